package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h.
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// SetGraphicsMode switches the active console to graphics mode so the
// blinking hardware cursor does not bleed through the framebuffer
// canvas. It tries /dev/tty first, then /dev/tty0.
func SetGraphicsMode() error {
	return setConsoleMode(kdGraphics, "KD_GRAPHICS")
}

// RestoreTextMode returns the console to text mode so the cursor and
// normal console come back after the session.
func RestoreTextMode() error {
	return setConsoleMode(kdText, "KD_TEXT")
}

func setConsoleMode(mode int, label string) error {
	paths := []string{"/dev/tty", "/dev/tty0"}
	var lastErr error
	for _, p := range paths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", label, p, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%s failed: unknown error", label)
}

// HideCursor writes the ANSI escape to hide the cursor to the active VT.
func HideCursor() error { return writeVT("\x1b[?25l") }

// ShowCursor makes the cursor visible again.
func ShowCursor() error { return writeVT("\x1b[?25h") }

func writeVT(s string) error {
	paths := []string{"/dev/tty", "/dev/tty0"}
	var lastErr error
	for _, p := range paths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return fmt.Errorf("write VT failed: %v", lastErr)
	}
	return fmt.Errorf("write VT failed: unknown error")
}

// Logging wrappers, used around the framebuffer session setup where a
// failure is worth a diagnostic but never fatal.
func SetGraphicsModeWithLog(l logger) error { return logged(l, "KD_GRAPHICS", SetGraphicsMode) }
func RestoreTextModeWithLog(l logger) error { return logged(l, "KD_TEXT", RestoreTextMode) }
func HideCursorWithLog(l logger) error      { return logged(l, "hide cursor", HideCursor) }
func ShowCursorWithLog(l logger) error      { return logged(l, "show cursor", ShowCursor) }

func logged(l logger, label string, fn func() error) error {
	err := fn()
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%s failed: %v", label, err)
	} else {
		l.Infof("tty", "%s ok", label)
	}
	return err
}
