// Package ghunt runs the GHunt executable and captures what it prints.
//
// GHunt is an opaque collaborator: goosint only sees its exit code and the
// text it writes to stdout and stderr.
package ghunt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultPath is the executable looked up on PATH.
	DefaultPath = "ghunt"

	// DefaultMaxOutput caps how much of each stream is kept (10MB).
	DefaultMaxOutput = 10 * 1024 * 1024

	// SignalTimeout is how long a timed-out process gets before SIGKILL.
	SignalTimeout = 2 * time.Second
)

var (
	// ErrTimeout is returned when GHunt does not finish within its bound.
	ErrTimeout = errors.New("ghunt timed out")

	// ErrNotFound is returned when the GHunt executable cannot be resolved.
	ErrNotFound = errors.New("ghunt executable not found")
)

// ExitCodeError reports a command that ran but exited non-zero.
type ExitCodeError struct {
	Code   int
	Stderr string
}

func (e ExitCodeError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return fmt.Sprintf("exit code %d: %s", e.Code, e.Stderr)
}

// Result is what one GHunt invocation produced.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner investigates one email address.
//
// A process that runs to completion yields a nil error whatever its exit
// code. ErrTimeout, ErrNotFound and context cancellation are returned as
// errors.
type Runner interface {
	Run(ctx context.Context, email string, timeout time.Duration) (Result, error)
}

// Tool drives a local GHunt installation.
type Tool struct {
	Path      string   // executable, defaults to DefaultPath
	Args      []string // prepended to every sub-command, e.g. ["-m", "ghunt"]
	Python    string   // interpreter used by Install, defaults to python3
	MaxOutput int64    // per-stream capture limit, defaults to DefaultMaxOutput
	Log       *zap.Logger

	Stdin  io.Reader // used by Login
	Stdout io.Writer // used by Login
	Stderr io.Writer // used by Login
}

var _ Runner = (*Tool)(nil)

func (t *Tool) path() string {
	if t.Path == "" {
		return DefaultPath
	}
	return t.Path
}

func (t *Tool) logger() *zap.Logger {
	if t.Log == nil {
		return zap.NewNop()
	}
	return t.Log
}

// Installed reports whether the GHunt executable resolves.
func (t *Tool) Installed() bool {
	_, err := exec.LookPath(t.path())
	return err == nil
}

// Run executes `ghunt email <email>` and captures its output.
func (t *Tool) Run(ctx context.Context, email string, timeout time.Duration) (Result, error) {
	return t.capture(ctx, timeout, t.path(), t.command("email", email)...)
}

// Install installs GHunt with pip. The pip output is returned in the error
// when the install fails.
func (t *Tool) Install(ctx context.Context) error {
	python := t.Python
	if python == "" {
		python = "python3"
	}
	res, err := t.capture(ctx, 0, python, "-m", "pip", "install", "ghunt")
	if err != nil {
		return fmt.Errorf("installing ghunt: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("installing ghunt: %w", ExitCodeError{Code: res.ExitCode, Stderr: strings.TrimSpace(res.Stderr)})
	}
	return nil
}

// Login runs `ghunt login` attached to the terminal so the user can answer
// its prompts.
func (t *Tool) Login(ctx context.Context, timeout time.Duration) error {
	runCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	err := t.loginCommand(runCtx).Run()
	if cerr := contextError(ctx, runCtx); cerr != nil {
		return cerr
	}
	if err == nil {
		return nil
	}
	if isCommandNotFoundError(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, t.path())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitCodeError{Code: exitCode(exitErr)}
	}
	return err
}

// loginCommand builds `ghunt login` in goosint's own process group so it
// stays the terminal's foreground job; a child in another group is stopped
// by SIGTTIN on its first read.
func (t *Tool) loginCommand(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, t.path(), t.command("login")...)
	cmd.Env = os.Environ()
	cmd.WaitDelay = SignalTimeout
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if t.Stdin != nil {
		cmd.Stdin = t.Stdin
	}
	if t.Stdout != nil {
		cmd.Stdout = t.Stdout
	}
	if t.Stderr != nil {
		cmd.Stderr = t.Stderr
	}
	return cmd
}

func (t *Tool) command(sub ...string) []string {
	args := make([]string, 0, len(t.Args)+len(sub))
	args = append(args, t.Args...)
	return append(args, sub...)
}

func (t *Tool) prepare(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = SignalTimeout
	return cmd
}

// capture runs name with args, collecting both streams. A zero timeout
// means no bound beyond ctx.
func (t *Tool) capture(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	runCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	limit := t.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}
	stdout := &cappedBuffer{limit: limit}
	stderr := &cappedBuffer{limit: limit}

	cmd := t.prepare(runCtx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	log := t.logger()
	log.Debug("starting command", zap.String("command", name), zap.Strings("args", args), zap.Duration("timeout", timeout))

	started := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}
	if stdout.truncated || stderr.truncated {
		log.Warn("output truncated", zap.String("command", name), zap.Int64("limit", limit))
	}

	if cerr := contextError(ctx, runCtx); cerr != nil {
		log.Debug("command interrupted", zap.String("command", name), zap.Error(cerr))
		return res, cerr
	}
	if err == nil {
		log.Debug("command finished", zap.String("command", name), zap.Duration("duration", res.Duration))
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitCode(exitErr)
		log.Debug("command exited non-zero", zap.String("command", name), zap.Int("exit_code", res.ExitCode))
		return res, nil
	}
	if isCommandNotFoundError(err) {
		res.ExitCode = 127
		return res, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	res.ExitCode = 1
	return res, err
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// contextError separates our own deadline from a cancellation of the
// parent context, which means the whole run is being interrupted.
func contextError(parent, run context.Context) error {
	if err := parent.Err(); err != nil {
		return err
	}
	if errors.Is(run.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return nil
}

func exitCode(exitErr *exec.ExitError) int {
	if code, ok := getExitCodeFromError(exitErr); ok {
		return code
	}
	if code := exitErr.ExitCode(); code > 0 {
		return code
	}
	return 1
}

// isCommandNotFoundError checks if the error indicates the command was not found.
func isCommandNotFoundError(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	if strings.Contains(errStr, "executable file not found") {
		return true
	}
	if runtime.GOOS != "windows" && strings.Contains(errStr, "no such file or directory") {
		return true
	}
	return false
}

// cappedBuffer keeps the first limit bytes and discards the rest while
// still reporting full writes, so the child never blocks on a full pipe.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.limit - int64(b.buf.Len())
	if room <= 0 {
		b.truncated = true
		return len(p), nil
	}
	if int64(len(p)) > room {
		b.buf.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
