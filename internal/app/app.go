package app

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/penniesfromkevin/goturtle/internal/config"
	"github.com/penniesfromkevin/goturtle/internal/input"
	"github.com/penniesfromkevin/goturtle/internal/render"
	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/internal/web"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// effect classifies what a command did to the canvas: nothing visible
// beyond the HUD, an appended trail tail, or a structural change that
// invalidates everything drawn so far. The loop never infers the mode
// from context; every command carries its classification.
type effect int

const (
	effectPose effect = iota // pose/pen/color changed, trail untouched
	effectIncremental        // trail grew, draw the tail
	effectFull               // trail or background rewritten, replay all
)

// App owns the interactive session: the state store, the render
// surface, the input source and the optional HTTP control server. Start
// runs the render loop until a quit event, an external Exit, a surface
// failure or context cancellation; the loop never resumes once stopped.
type App struct {
	Store   *state.Store
	Surface render.Surface
	Input   input.Source
	Web     web.Server
	Logger  Logger
	Cfg     config.Config

	painter  *render.Painter
	stopped  atomic.Bool
	exitOnce atomic.Bool
	exitCh   chan error
	signals  chan effect
}

func New(store *state.Store, surface render.Surface, source input.Source, webServer web.Server, cfg config.Config) *App {
	return &App{
		Store:   store,
		Surface: surface,
		Input:   source,
		Web:     webServer,
		Cfg:     cfg,
		Logger:  NoopLogger{},
		painter: render.NewPainter(surface),
		exitCh:  make(chan error, 1),
		signals: make(chan effect, 64),
	}
}

// Exit requests the loop to stop. The first caller wins; the error (nil
// for a clean quit) is what Start returns.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Stopped reports whether the loop has terminated. Commands issued
// against a stopped app fail with ErrSurfaceUnavailable.
func (app *App) Stopped() bool { return app.stopped.Load() }

// Start acquires the surface and input source, starts the control
// server and runs the render loop until termination. It always releases
// the surface on the way out.
func (app *App) Start(ctx context.Context) error {
	defer app.stopped.Store(true)

	if err := app.seedFromConfig(); err != nil {
		app.Logger.Errorf("app", "config defaults: %v", err)
		return err
	}

	if err := app.Surface.Start(ctx); err != nil {
		app.Logger.Errorf("app", "surface start error: %v", err)
		return err
	}
	defer app.Surface.Stop()

	// The terminal backend serves as both the surface and the input
	// source; a dual-role object is started and stopped once.
	if any(app.Input) != any(app.Surface) {
		if err := app.Input.Start(ctx); err != nil {
			app.Logger.Errorf("app", "input start error: %v", err)
			return err
		}
		defer app.Input.Stop()
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("app", "web start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	// First frame before any input so the canvas shows without waiting
	// for the tick.
	if err := app.painter.Full(app.Store); err != nil {
		return err
	}

	app.Logger.Infof("app", "render loop running at %d fps", app.Cfg.FrameRate)
	return app.runLoop(ctx)
}

// seedFromConfig applies the configured pen color, background and
// thickness to the turtle before the first frame.
func (app *App) seedFromConfig() error {
	return app.Store.Apply(func(t *turtle.Turtle) error {
		if app.Cfg.PenColor != "" {
			if err := t.SetColorName(app.Cfg.PenColor); err != nil {
				return fmt.Errorf("pen_color %q: %w", app.Cfg.PenColor, err)
			}
		}
		if app.Cfg.Background != "" {
			if err := t.SetBackgroundName(app.Cfg.Background); err != nil {
				return fmt.Errorf("background %q: %w", app.Cfg.Background, err)
			}
		}
		if app.Cfg.Thickness > 0 {
			t.SetThickness(app.Cfg.Thickness)
		}
		return nil
	})
}

func (app *App) runLoop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(app.Cfg.FrameRate))
	defer ticker.Stop()
	lastBeat := time.Now()

	events := app.Input.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-app.exitCh:
			return err

		case ev, ok := <-events:
			if !ok {
				// A closed source sends nothing more; a nil channel
				// blocks instead of spinning on the closed one.
				events = nil
				continue
			}
			if err := app.handleEvent(ev); err != nil {
				app.Logger.Errorf("app", "surface lost: %v", err)
				return err
			}

		case eff := <-app.signals:
			if err := app.applyEffect(eff); err != nil {
				app.Logger.Errorf("app", "surface lost: %v", err)
				return err
			}

		case <-ticker.C:
			// The tick is the cooperative yield: it signals liveness to
			// the host and flushes any drawing a dropped signal missed.
			if err := app.painter.Incremental(app.Store); err != nil {
				app.Logger.Errorf("app", "surface lost: %v", err)
				return err
			}
			if time.Since(lastBeat) > 5*time.Second {
				snap := app.Store.Snapshot()
				app.Logger.Infof("app", "heartbeat, trail=%d pos=(%.1f,%.1f)", snap.TrailLen, snap.Position.X, snap.Position.Y)
				lastBeat = time.Now()
			}
		}
	}
}

func (app *App) applyEffect(eff effect) error {
	switch eff {
	case effectIncremental:
		return app.painter.Incremental(app.Store)
	case effectFull:
		return app.painter.Full(app.Store)
	default:
		return app.painter.Refresh(app.Store)
	}
}

// Logger is the component logger the whole binary shares.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
