package input

import (
	"context"
	"strconv"
	"strings"
)

// Action is a discrete command the render loop knows how to apply.
type Action int

const (
	ActionNone Action = iota
	ActionMoveForward
	ActionMoveBackward
	ActionTurnLeft
	ActionTurnRight
	ActionTurnLeft90
	ActionTurnRight90
	ActionTogglePen
	ActionCycleColor
	ActionCycleBackground
	ActionThicknessUp
	ActionThicknessDown
	ActionZeroHeading
	ActionReset
	ActionClear
	ActionNGon
	ActionCircle
	ActionQuit
	ActionResize
)

// Event is one input signal delivered to the render loop. Sides is only
// meaningful for ActionNGon.
type Event struct {
	Action Action
	Sides  int
}

// Logger is the slice of the app logger the input sources need.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Source is an input capability: it emits events on a channel until
// stopped. Sources that recognize nothing simply stay silent; unknown
// keys are dropped at the source, unknown events are dropped by the
// loop.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// ParseAction resolves a binding's action name. The second return is
// false for unknown names so bad bindings can be ignored rather than
// rejected.
func ParseAction(name string) (Event, bool) {
	switch name {
	case "move-forward":
		return Event{Action: ActionMoveForward}, true
	case "move-backward":
		return Event{Action: ActionMoveBackward}, true
	case "turn-left":
		return Event{Action: ActionTurnLeft}, true
	case "turn-right":
		return Event{Action: ActionTurnRight}, true
	case "turn-left-90":
		return Event{Action: ActionTurnLeft90}, true
	case "turn-right-90":
		return Event{Action: ActionTurnRight90}, true
	case "toggle-pen":
		return Event{Action: ActionTogglePen}, true
	case "cycle-color":
		return Event{Action: ActionCycleColor}, true
	case "cycle-background":
		return Event{Action: ActionCycleBackground}, true
	case "thickness-up":
		return Event{Action: ActionThicknessUp}, true
	case "thickness-down":
		return Event{Action: ActionThicknessDown}, true
	case "zero-heading":
		return Event{Action: ActionZeroHeading}, true
	case "reset":
		return Event{Action: ActionReset}, true
	case "clear":
		return Event{Action: ActionClear}, true
	case "circle":
		return Event{Action: ActionCircle}, true
	case "quit":
		return Event{Action: ActionQuit}, true
	}
	if sides, ok := strings.CutPrefix(name, "ngon-"); ok {
		n, err := strconv.Atoi(sides)
		if err == nil && n > 0 {
			return Event{Action: ActionNGon, Sides: n}, true
		}
	}
	return Event{}, false
}

// Bindings maps key names to events, pre-resolved from the config's
// key-name → action-name table. Unknown actions are skipped.
type Bindings map[string]Event

func NewBindings(raw map[string]string) Bindings {
	b := make(Bindings, len(raw))
	for key, action := range raw {
		if ev, ok := ParseAction(action); ok {
			b[key] = ev
		}
	}
	return b
}

// Lookup returns the event bound to a key name, if any.
func (b Bindings) Lookup(key string) (Event, bool) {
	ev, ok := b[key]
	return ev, ok
}

// NoopSource emits nothing; it keeps the loop running on its frame tick
// alone (simulator and tests).
type NoopSource struct{ ch chan Event }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Event)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { close(n.ch); return nil }
func (n *NoopSource) Events() <-chan Event            { return n.ch }

// ScriptSource replays a fixed sequence of events, then stays silent.
// Tests and simulator scenarios use it to drive the loop.
type ScriptSource struct {
	script []Event
	ch     chan Event
}

func NewScriptSource(script []Event) *ScriptSource {
	return &ScriptSource{script: script, ch: make(chan Event, len(script))}
}

func (s *ScriptSource) Start(ctx context.Context) error {
	for _, ev := range s.script {
		select {
		case s.ch <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *ScriptSource) Stop() error          { return nil }
func (s *ScriptSource) Events() <-chan Event { return s.ch }
