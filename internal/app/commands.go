package app

import (
	"github.com/penniesfromkevin/goturtle/internal/input"
	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// handleEvent maps one input event onto the turtle and draws the
// consequence. Unrecognized events are dropped, not errors. Only a
// surface failure propagates.
func (app *App) handleEvent(ev input.Event) error {
	step := app.Cfg.MoveStep
	turn := app.Cfg.TurnStep

	switch ev.Action {
	case input.ActionQuit:
		app.Logger.Infof("app", "quit requested")
		app.Exit(nil)
		return nil
	case input.ActionResize:
		return app.painter.Full(app.Store)

	case input.ActionMoveForward:
		return app.command(func(t *turtle.Turtle) error { return t.Move(step) }, effectIncremental)
	case input.ActionMoveBackward:
		return app.command(func(t *turtle.Turtle) error { return t.Move(-step) }, effectIncremental)
	case input.ActionTurnLeft:
		return app.command(func(t *turtle.Turtle) error { return t.Turn(turn) }, effectPose)
	case input.ActionTurnRight:
		return app.command(func(t *turtle.Turtle) error { return t.Turn(-turn) }, effectPose)
	case input.ActionTurnLeft90:
		return app.command(func(t *turtle.Turtle) error { return t.Turn(90) }, effectPose)
	case input.ActionTurnRight90:
		return app.command(func(t *turtle.Turtle) error { return t.Turn(-90) }, effectPose)
	case input.ActionTogglePen:
		return app.command(func(t *turtle.Turtle) error { t.TogglePen(); return nil }, effectPose)
	case input.ActionCycleColor:
		return app.command(func(t *turtle.Turtle) error { t.CycleColor(); return nil }, effectPose)
	case input.ActionCycleBackground:
		return app.command(func(t *turtle.Turtle) error { t.CycleBackground(); return nil }, effectFull)
	case input.ActionThicknessUp:
		return app.command(func(t *turtle.Turtle) error { t.SetThickness(t.Thickness() + 1); return nil }, effectPose)
	case input.ActionThicknessDown:
		return app.command(func(t *turtle.Turtle) error { t.SetThickness(t.Thickness() - 1); return nil }, effectPose)
	case input.ActionZeroHeading:
		return app.command(func(t *turtle.Turtle) error { return t.SetHeading(0) }, effectPose)
	case input.ActionReset:
		return app.command(func(t *turtle.Turtle) error { t.Reset(); return nil }, effectFull)
	case input.ActionClear:
		return app.command(func(t *turtle.Turtle) error { t.Clear(); return nil }, effectFull)
	case input.ActionNGon:
		sides := ev.Sides
		return app.command(func(t *turtle.Turtle) error { return t.NGon(sides, 0) }, effectIncremental)
	case input.ActionCircle:
		return app.command(func(t *turtle.Turtle) error { return t.NGon(turtle.NGonSidesMax, 0) }, effectIncremental)
	}
	// Unknown action: drop it silently.
	return nil
}

// command applies a loop-originated mutation and draws immediately.
// InvalidArgument errors from the turtle are logged and swallowed here;
// interactive input cannot do anything useful with them.
func (app *App) command(op func(t *turtle.Turtle) error, eff effect) error {
	if err := app.Store.Apply(op); err != nil {
		app.Logger.Errorf("app", "command rejected: %v", err)
		return nil
	}
	return app.applyEffect(eff)
}

// Do applies a mutation on behalf of another goroutine (the HTTP API or
// a library caller) and signals the loop to draw. Argument errors come
// back synchronously; drawing happens on the loop goroutine, which owns
// the surface.
func (app *App) Do(op func(t *turtle.Turtle) error, eff effect) error {
	if app.Stopped() {
		return turtle.ErrSurfaceUnavailable
	}
	if err := app.Store.Apply(op); err != nil {
		return err
	}
	select {
	case app.signals <- eff:
	default:
		// Signal queue full; the frame tick flushes pending increments
		// and a later signal restores structural changes.
	}
	return nil
}

// The methods below form the web.Commands surface wired up by main.

func (app *App) Move(distance float64) error {
	return app.Do(func(t *turtle.Turtle) error { return t.Move(distance) }, effectIncremental)
}

func (app *App) Turn(degrees float64) error {
	return app.Do(func(t *turtle.Turtle) error { return t.Turn(degrees) }, effectPose)
}

func (app *App) SetPen(down bool) error {
	return app.Do(func(t *turtle.Turtle) error { t.SetPen(down); return nil }, effectPose)
}

func (app *App) SetColor(name string) error {
	return app.Do(func(t *turtle.Turtle) error { return t.SetColorName(name) }, effectPose)
}

func (app *App) SetBackground(name string) error {
	return app.Do(func(t *turtle.Turtle) error { return t.SetBackgroundName(name) }, effectFull)
}

func (app *App) SetThickness(n int) error {
	return app.Do(func(t *turtle.Turtle) error { t.SetThickness(n); return nil }, effectPose)
}

func (app *App) NGon(sides int, length float64) error {
	return app.Do(func(t *turtle.Turtle) error { return t.NGon(sides, length) }, effectIncremental)
}

func (app *App) Reset() error {
	return app.Do(func(t *turtle.Turtle) error { t.Reset(); return nil }, effectFull)
}

func (app *App) Clear() error {
	return app.Do(func(t *turtle.Turtle) error { t.Clear(); return nil }, effectFull)
}

func (app *App) Snapshot() state.Snapshot { return app.Store.Snapshot() }

func (app *App) Trail() []turtle.Segment { return app.Store.Trail() }
