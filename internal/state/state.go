package state

import (
	"image/color"
	"sync"

	"github.com/penniesfromkevin/goturtle/turtle"
)

// Snapshot is a point-in-time copy of the turtle's pose. The trail is
// deliberately excluded; callers pull it via Trail or TrailSince so a
// per-frame snapshot stays O(1).
type Snapshot struct {
	Position       turtle.Point
	Heading        float64
	PenDown        bool
	Color          color.RGBA
	ColorName      string
	Background     color.RGBA
	BackgroundName string
	Thickness      int
	TrailLen       int
}

// Store serializes access to a single turtle. The render loop, the HTTP
// API and a library session may all command the turtle; every mutation
// funnels through Apply under the write lock, reads take the read lock.
type Store struct {
	mu sync.RWMutex
	t  *turtle.Turtle
}

func NewStore() *Store {
	return &Store{t: turtle.New()}
}

// Apply runs op against the turtle under the write lock. The op's error
// is returned unchanged; turtle operations fail only on invalid
// arguments and leave the state untouched when they do.
func (store *Store) Apply(op func(t *turtle.Turtle) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return op(store.t)
}

func (store *Store) Snapshot() Snapshot {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return Snapshot{
		Position:       store.t.Position(),
		Heading:        store.t.Heading(),
		PenDown:        store.t.Pen(),
		Color:          store.t.Color(),
		ColorName:      store.t.ColorName(),
		Background:     store.t.Background(),
		BackgroundName: store.t.BackgroundName(),
		Thickness:      store.t.Thickness(),
		TrailLen:       store.t.TrailLen(),
	}
}

// Trail returns a copy of the whole trail in drawing order.
func (store *Store) Trail() []turtle.Segment {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.t.Trail()
}

// TrailSince returns a copy of the segments appended at or after index n.
func (store *Store) TrailSince(n int) []turtle.Segment {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.t.TrailSince(n)
}
