package system

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner executes host commands. The lifeline script goes through it so
// tests can substitute a recorder and headless hosts a no-op.
type Runner interface {
	Run(ctx context.Context, cmd string, args ...string) (stdout, stderr string, err error)
}

type NoopRunner struct{}

func (NoopRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	return "", "", nil
}

// ShellRunner executes commands via the shell PATH. It returns stdout,
// stderr, and an error if the command exits non-zero.
type ShellRunner struct{}

func (ShellRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf
	err := c.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return outBuf.String(), errBuf.String(), fmt.Errorf("exit %d: %w", exitErr.ExitCode(), err)
		}
		return outBuf.String(), errBuf.String(), err
	}
	return outBuf.String(), errBuf.String(), nil
}
