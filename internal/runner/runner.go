package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Spawner starts a process in dir and waits for it.
type Spawner interface {
	Spawn(ctx context.Context, dir, name string, args []string) (exitCode int, err error)
}

// ExitError reports a script that exited non-zero.
type ExitError struct {
	Script string
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("script %q exited with code %d", e.Script, e.Code)
}

// ExecSpawner runs processes with os/exec.
type ExecSpawner struct {
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Spawn runs name with args and returns its exit code. The error is non-nil
// only when the process could not be started.
func (s *ExecSpawner) Spawn(ctx context.Context, dir, name string, args []string) (int, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return -1, fmt.Errorf("finding %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdin = s.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = s.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = s.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("running %s: %w", name, err)
	}
	return 0, nil
}

// Runner runs package.json scripts through a package manager.
type Runner struct {
	Manager PackageManager
	Spawner Spawner
}

// New returns a runner using the default spawner.
func New(pm PackageManager) *Runner {
	return &Runner{Manager: pm, Spawner: &ExecSpawner{}}
}

// Run runs script in dir. A non-zero exit is returned as *ExitError.
func (r *Runner) Run(ctx context.Context, dir, script string, extra []string) error {
	args := r.Manager.Args(script, extra)
	log.Debug("running script", "manager", r.Manager.String(), "args", args, "dir", dir)

	code, err := r.Spawner.Spawn(ctx, dir, r.Manager.Name, args)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Script: script, Code: code}
	}
	return nil
}
