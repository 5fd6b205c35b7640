//go:build !linux

package input

import "context"

// Evdev is Linux-only; elsewhere the source stays silent and the
// terminal backend provides input instead.
type EvdevSource struct {
	Logger Logger
	ch     chan Event
}

func NewEvdevSource(bindings Bindings, logger Logger) *EvdevSource {
	return &EvdevSource{Logger: logger, ch: make(chan Event)}
}

func (s *EvdevSource) Start(ctx context.Context) error {
	if s.Logger != nil {
		s.Logger.Infof("input", "evdev keyboard input unavailable on this platform")
	}
	return nil
}

func (s *EvdevSource) Stop() error          { close(s.ch); return nil }
func (s *EvdevSource) Events() <-chan Event { return s.ch }
