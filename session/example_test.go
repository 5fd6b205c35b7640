package session_test

import (
	"context"
	"fmt"

	"github.com/penniesfromkevin/goturtle/session"
)

// Draw a square into an in-memory canvas and inspect the result.
func Example() {
	s := session.New(session.Options{CanvasWidth: 400, CanvasHeight: 400})
	if err := s.Start(context.Background()); err != nil {
		fmt.Println("start:", err)
		return
	}
	defer s.End()

	for i := 0; i < 4; i++ {
		_ = s.Move(100)
		_ = s.Turn(90)
	}

	fmt.Println("segments drawn:", s.TrailLen())
	fmt.Println("heading:", s.Heading())
	// Output:
	// segments drawn: 4
	// heading: 0
}
