package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penniesfromkevin/goturtle/internal/app"
	"github.com/penniesfromkevin/goturtle/internal/config"
	"github.com/penniesfromkevin/goturtle/internal/input"
	"github.com/penniesfromkevin/goturtle/internal/render"
	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/internal/system"
	"github.com/penniesfromkevin/goturtle/internal/web"
)

func main() {
	os.Exit(run())
}

// run carries the real main body so deferred console restores execute
// before the process exits.
func run() int {
	configPath := flag.String("config", "", "path to a YAML config file; defaults apply when empty")
	backend := flag.String("backend", "term", "render backend: fb | term | headless")
	noWeb := flag.Bool("no-web", false, "disable the HTTP control API")
	noQR := flag.Bool("no-qr", false, "disable the control URL QR overlay (fb backend)")
	debug := flag.Bool("debug", false, "enable debug logging to ./goturtle-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via TURTLE_STDIO_LOG")
	flag.Parse()

	// Best-effort: capture panics to a file, since the console may be in
	// graphics mode when one hits.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("TURTLE_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./goturtle-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	bindings := input.NewBindings(cfg.Bindings)

	var surface render.Surface
	var source input.Source
	var frame web.FrameFunc

	switch *backend {
	case "fb":
		fbs := render.NewFBSurface(cfg.CanvasWidth, cfg.CanvasHeight)
		fbs.Logger = logger
		fbs.FontPath = cfg.FontPath
		if !*noWeb && !*noQR {
			url := system.ControlURL(cfg.ListenAddr)
			if qr, qerr := render.ControlQR(url, 0); qerr == nil && qr != nil {
				fbs.SetOverlay(qr)
			} else if qerr != nil {
				logger.Errorf("main", "control QR error: %v", qerr)
			}
		}
		surface = fbs
		source = input.NewEvdevSource(bindings, logger)

		// The framebuffer shares the console; suppress the text cursor
		// for the duration of the session.
		_ = system.SetGraphicsModeWithLog(logger)
		_ = system.HideCursorWithLog(logger)
		defer func() {
			_ = system.ShowCursorWithLog(logger)
			_ = system.RestoreTextModeWithLog(logger)
		}()

	case "term":
		ts := render.NewTermSurface(bindings)
		surface = ts
		source = ts

	case "headless":
		mem := render.NewMemSurface(cfg.CanvasWidth, cfg.CanvasHeight)
		surface = mem
		source = input.NewNoopSource()
		frame = mem.Frame

	default:
		fmt.Println("unknown backend:", *backend)
		return 2
	}

	var server web.Server = &web.NoopServer{}
	var httpServer *web.HTTPServer
	if !*noWeb {
		httpServer = web.NewHTTPServer(cfg.ListenAddr)
		httpServer.DevMode = cfg.DevMode
		httpServer.Frame = frame
		server = httpServer
	}

	a := app.New(store, surface, source, server, cfg)
	a.Logger = logger
	if httpServer != nil {
		httpServer.Commands = a
	}

	// The loop's frame presents are the periodic alive beat; tell the
	// host watchdog to stand down while it runs.
	runner := system.ShellRunner{}
	if err := system.LifelineOff(ctx, runner); err != nil {
		logger.Errorf("main", "lifeline off: %v", err)
	}
	defer func() {
		if err := system.LifelineOn(context.Background(), runner); err != nil {
			logger.Errorf("main", "lifeline on: %v", err)
		}
	}()

	if err := a.Start(ctx); err != nil && ctx.Err() == nil {
		fmt.Println("goturtle exited with error:", err)
		return 1
	}
	return 0
}
