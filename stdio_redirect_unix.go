//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Dup2 onto stdout/stderr at the descriptor level so panics and prints
	// from every goroutine land in the file, not on the graphics console.
	if err := unix.Dup2(int(f.Fd()), int(os.Stdout.Fd())); err != nil {
		return err
	}
	if err := unix.Dup2(int(f.Fd()), int(os.Stderr.Fd())); err != nil {
		return err
	}
	return nil
}
