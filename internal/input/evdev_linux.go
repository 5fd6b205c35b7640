//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

// Linux input-event-codes.h, the subset the default bindings reach.
var evdevKeyNames = map[uint16]string{
	1:   "escape",
	2:   "1",
	3:   "2",
	4:   "3",
	5:   "4",
	6:   "5",
	7:   "6",
	8:   "7",
	9:   "8",
	10:  "9",
	11:  "0",
	12:  "minus",
	13:  "equal",
	14:  "backspace",
	30:  "a",
	44:  "z",
	46:  "c",
	51:  "comma",
	52:  "period",
	57:  "space",
	103: "up",
	105: "left",
	106: "right",
	108: "down",
}

// EvdevSource reads raw key events from Linux evdev devices under
// /dev/input/event* and translates them through the bindings table.
// It is best-effort: devices that cannot be opened are skipped, and a
// host with no readable devices yields a silent source.
type EvdevSource struct {
	Logger Logger

	bindings Bindings
	ch       chan Event
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewEvdevSource(bindings Bindings, logger Logger) *EvdevSource {
	return &EvdevSource{Logger: logger, bindings: bindings, ch: make(chan Event, 16)}
}

func (s *EvdevSource) Events() <-chan Event { return s.ch }

func (s *EvdevSource) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if s.Logger != nil {
			s.Logger.Infof("input", "no evdev devices found, keyboard input disabled")
		}
		return nil
	}

	for _, path := range paths {
		s.wg.Add(1)
		go s.readDevice(ctx, path)
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.wg.Wait()
		close(s.ch)
	})
	return nil
}

func (s *EvdevSource) readDevice(ctx context.Context, path string) {
	defer s.wg.Done()

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() { _ = f.Close() }()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := tvSize + 2 + 2 + 4

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, pollErr := unix.Poll(pollFds, 250); pollErr != nil {
			// Device went away; the surface is unaffected, just stop reading.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, readErr := unix.Read(fd, buf)
		if readErr != nil {
			if readErr == unix.EAGAIN || readErr == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			// value 1 = press, 2 = autorepeat; both drive the turtle.
			if typ != evKey || (value != 1 && value != 2) {
				continue
			}
			name, known := evdevKeyNames[code]
			if !known {
				continue
			}
			ev, bound := s.bindings.Lookup(name)
			if !bound {
				continue
			}
			select {
			case s.ch <- ev:
			case <-ctx.Done():
				return
			default:
				// Loop is behind; dropping a key press beats blocking the reader.
			}
		}
	}
}
