package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the config file.
const (
	EnvListenAddr = "TURTLE_LISTEN"
	EnvDevMode    = "TURTLE_DEV"
)

// Config is the tunable surface of the controller: canvas geometry,
// step sizes, frame rate, key bindings and the HTTP listen address.
// None of the defaults are load-bearing; they mirror the classic
// keyboard-turtle feel (small steps, 20 frames per second).
type Config struct {
	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`

	// MoveStep is the distance of one directional move event; TurnStep
	// the degrees of one turn event.
	MoveStep float64 `yaml:"move_step"`
	TurnStep float64 `yaml:"turn_step"`

	// FrameRate is the render loop tick in frames per second. The tick
	// doubles as the input poll timeout and the liveness beat.
	FrameRate int `yaml:"frame_rate"`

	PenColor   string `yaml:"pen_color"`
	Background string `yaml:"background"`
	Thickness  int    `yaml:"thickness"`

	// FontPath optionally points at a TTF file for the HUD; when empty
	// the built-in bitmap face is used.
	FontPath string `yaml:"font_path"`

	ListenAddr string `yaml:"listen_addr"`
	DevMode    bool   `yaml:"dev_mode"`

	// Bindings maps key names to action names; see internal/input for
	// the recognized actions.
	Bindings map[string]string `yaml:"bindings"`
}

// Default returns the built-in configuration with the classic key map.
func Default() Config {
	return Config{
		CanvasWidth:  1280,
		CanvasHeight: 720,
		MoveStep:     4,
		TurnStep:     5,
		FrameRate:    20,
		PenColor:     "red",
		Background:   "black",
		Thickness:    3,
		ListenAddr:   ":8080",
		Bindings: map[string]string{
			"up":        "move-forward",
			"down":      "move-backward",
			"left":      "turn-left",
			"right":     "turn-right",
			"space":     "toggle-pen",
			"escape":    "quit",
			"z":         "cycle-color",
			"a":         "cycle-background",
			"comma":     "turn-left-90",
			"period":    "turn-right-90",
			"0":         "reset",
			"backspace": "clear",
			"minus":     "thickness-down",
			"equal":     "thickness-up",
			"c":         "circle",
			"3":         "ngon-3",
			"4":         "ngon-4",
			"5":         "ngon-5",
			"6":         "ngon-6",
			"7":         "ngon-7",
			"8":         "ngon-8",
			"9":         "ngon-9",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if addr := os.Getenv(EnvListenAddr); addr != "" {
		cfg.ListenAddr = addr
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}
	return nil
}

func (cfg *Config) validate() error {
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive (got %dx%d)", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive (got %d)", cfg.FrameRate)
	}
	if cfg.MoveStep <= 0 {
		return fmt.Errorf("move_step must be positive (got %v)", cfg.MoveStep)
	}
	if cfg.TurnStep <= 0 {
		return fmt.Errorf("turn_step must be positive (got %v)", cfg.TurnStep)
	}
	return nil
}
