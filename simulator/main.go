// The simulator runs the controller headless for development: the
// canvas renders into memory, the HTTP API is the only input, and
// GET /api/v1/canvas.png shows what a display would. A scenario flag
// can pre-draw a figure so there is something to look at immediately.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/penniesfromkevin/goturtle/internal/app"
	"github.com/penniesfromkevin/goturtle/internal/config"
	"github.com/penniesfromkevin/goturtle/internal/input"
	"github.com/penniesfromkevin/goturtle/internal/render"
	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/internal/web"
)

func main() {
	listenAddr := flag.String("listen", ":8080", "http listen address; also configurable via "+config.EnvListenAddr)
	devMode := flag.Bool("dev", false, "enable dev-mode CORS; also configurable via "+config.EnvDevMode)
	scenario := flag.String("scenario", "square", "startup drawing: square | star | ngon | spiral | none")
	width := flag.Int("width", 0, "canvas width in pixels (default from config)")
	height := flag.Int("height", 0, "canvas height in pixels (default from config)")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *devMode {
		cfg.DevMode = true
	}
	if *width > 0 {
		cfg.CanvasWidth = *width
	}
	if *height > 0 {
		cfg.CanvasHeight = *height
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	mem := render.NewMemSurface(cfg.CanvasWidth, cfg.CanvasHeight)

	server := web.NewHTTPServer(cfg.ListenAddr)
	server.DevMode = cfg.DevMode
	server.Frame = mem.Frame

	a := app.New(store, mem, input.NewNoopSource(), server, cfg)
	server.Commands = a

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	name := strings.TrimSpace(*scenario)
	if name != "" && name != "none" {
		if err := runScenario(a, name); err != nil {
			fmt.Println("scenario error:", err)
			a.Exit(err)
			<-done
			os.Exit(2)
		}
	}

	fmt.Println("goturtle simulator listening on", cfg.ListenAddr)
	fmt.Println("Scenario:", name)
	fmt.Println("Canvas:  ", fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight))
	fmt.Println("API:      http://" + displayAddr(cfg.ListenAddr) + "/api/v1/")

	err = <-done
	if err != nil && ctx.Err() == nil {
		fmt.Println("simulator exited with error:", err)
		os.Exit(1)
	}
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if addr == "" {
		return "127.0.0.1:8080"
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
