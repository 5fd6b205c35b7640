package main

import (
	"fmt"

	"github.com/penniesfromkevin/goturtle/internal/app"
)

// runScenario pre-draws a figure through the same command surface the
// HTTP API uses, so the simulator starts with a non-empty canvas.
func runScenario(a *app.App, name string) error {
	switch name {
	case "square":
		for i := 0; i < 4; i++ {
			if err := a.Move(120); err != nil {
				return err
			}
			if err := a.Turn(90); err != nil {
				return err
			}
		}
		return nil

	case "star":
		if err := a.SetColor("yellow"); err != nil {
			return err
		}
		for i := 0; i < 5; i++ {
			if err := a.Move(160); err != nil {
				return err
			}
			if err := a.Turn(144); err != nil {
				return err
			}
		}
		return nil

	case "ngon":
		if err := a.SetColor("cyan"); err != nil {
			return err
		}
		return a.NGon(6, 80)

	case "spiral":
		if err := a.SetColor("magenta"); err != nil {
			return err
		}
		for i := 1; i <= 60; i++ {
			if err := a.Move(float64(i) * 3); err != nil {
				return err
			}
			if err := a.Turn(89); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown scenario %q", name)
	}
}
