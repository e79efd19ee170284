package ripgrep

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"
)

// DefaultExecutable is looked up on PATH when no executable is configured.
const DefaultExecutable = "rg"

const maxLineSize = 1024 * 1024

// ErrSpawn is returned when the executable cannot be started.
var ErrSpawn = errors.New("spawn rg")

// ExitError reports an rg process that ended unsuccessfully without being cancelled.
type ExitError struct {
	// Code is the exit status, or -1 when the process was terminated by a signal.
	Code int
	// Signal names the terminating signal; empty for a normal exit.
	Signal string
	Err    *exec.ExitError
}

func (e *ExitError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("rg terminated by signal: %s", e.Signal)
	}
	return fmt.Sprintf("rg exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// Runner spawns rg and streams the paths it prints.
type Runner struct {
	executable string
	logger     *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a logger for process lifecycle debug output.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner for executable; an empty executable means DefaultExecutable.
func NewRunner(executable string, opts ...RunnerOption) *Runner {
	if executable == "" {
		executable = DefaultExecutable
	}
	r := &Runner{executable: executable, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Executable returns the program the runner spawns.
func (r *Runner) Executable() string {
	return r.executable
}

// Run starts rg in dir with args and sends each output line to lines, in order, until the
// process exits or ctx is cancelled. Run does not close lines.
//
// Cancellation is not an error: the process is killed and Run returns nil once it has been
// reaped. A non-zero exit or an unrequested signal returns *ExitError; a failure to start
// returns an error wrapping ErrSpawn. Run never returns while the process is still running.
func (r *Runner) Run(ctx context.Context, dir string, args []string, lines chan<- string) error {
	if ctx.Err() != nil {
		return nil
	}
	cmd := exec.Command(r.executable, args...)
	cmd.Dir = dir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSpawn, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSpawn, r.executable, err)
	}
	r.logger.Debug("rg started",
		zap.String("dir", dir),
		zap.Strings("args", args),
		zap.Int("pid", cmd.Process.Pid))

	var cancelled atomic.Bool
	stop := context.AfterFunc(ctx, func() {
		cancelled.Store(true)
		// Best effort: the process may already have exited.
		_ = cmd.Process.Kill()
		_ = stdout.Close()
	})
	defer stop()

	scanErr := r.stream(ctx, stdout, lines)
	if scanErr != nil && !cancelled.Load() {
		// Unblock a writer stuck on a full pipe before reaping.
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	if cancelled.Load() || ctx.Err() != nil {
		r.logger.Debug("rg cancelled", zap.String("dir", dir))
		return nil
	}
	if scanErr != nil {
		return fmt.Errorf("read rg output: %w", scanErr)
	}
	if waitErr != nil {
		return exitError(waitErr)
	}
	r.logger.Debug("rg finished", zap.String("dir", dir))
	return nil
}

func (r *Runner) stream(ctx context.Context, stdout io.Reader, lines chan<- string) error {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		select {
		case lines <- line:
		case <-ctx.Done():
			return nil
		}
	}
	return scanner.Err()
}

func exitError(err error) error {
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return fmt.Errorf("wait rg: %w", err)
	}
	out := &ExitError{Code: ee.ExitCode(), Err: ee}
	if status, ok := ee.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		out.Signal = status.Signal().String()
	}
	return out
}
