// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/runcmd/internal/ctxlog"
	"github.com/matt-FFFFFF/runcmd/internal/runner"
	"github.com/matt-FFFFFF/runcmd/internal/shell"
)

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

// ErrCommandFailed is the error wrapped by the panic raised by MustRun when
// the command could not be executed or exited with a non-zero code.
var ErrCommandFailed = errors.New("command failed")

// Result captures a single execution: the original command text, the
// captured output streams with trailing newlines trimmed, and the child's
// exit code. It is never mutated after Run returns it.
type Result struct {
	Cmd      string // The original command text, exactly as supplied to New.
	StdOut   string // Captured standard output, trailing CR/LF trimmed.
	StdErr   string // Captured standard error, trailing CR/LF trimmed.
	ExitCode int    // The child's exit status; -1 if it terminated without one.
}

// Runner builds and executes a single command. Construct it with New,
// optionally toggle options with WithVerbose and WithShell, then call Run
// or MustRun exactly once.
type Runner struct {
	cmd     string
	verbose bool
	shell   bool
	trace   io.Writer
}

// New creates a Runner for the given command text with default options:
// not verbose, not shell.
//
// In the default direct mode the text is split into a program name and
// arguments by naive whitespace tokenization. There is no quote or escape
// handling; use WithShell when the command needs shell syntax.
func New(cmd string) *Runner {
	return &Runner{
		cmd:   cmd,
		trace: os.Stdout,
	}
}

// WithVerbose enables tracing of the command and its outcome to stdout.
// It performs no I/O itself and is idempotent.
func (r *Runner) WithVerbose() *Runner {
	r.verbose = true
	return r
}

// WithShell makes Run hand the command text verbatim to the platform shell
// interpreter instead of executing the program directly. Shell
// metacharacters, quoting, pipes and redirection are honored exactly as the
// shell defines them. Idempotent.
func (r *Runner) WithShell() *Runner {
	r.shell = true
	return r
}

// Run executes the configured command once, blocking until the child
// process terminates and its output streams are drained.
//
// It returns an error only when the program could not be located or spawned,
// or when capturing its output failed. A non-zero exit code is reported via
// the Result, not as an error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.Logger(ctx).With("cmd", r.cmd, "shell", r.shell)

	spec, err := r.spec(ctx)
	if err != nil {
		logger.Debug("could not resolve command", "error", err)
		return nil, err
	}

	// The banner is only printed once the command resolves, so a failed
	// lookup never leaves a dangling trace block without a trailer.
	if r.verbose {
		fmt.Fprintf(r.trace, "cmd:\n '%s'\n\n", r.cmd)
	}

	outcome, err := spec.Run(ctx)
	if err != nil {
		logger.Debug("execution failed", "error", err)
		return nil, err
	}

	res := &Result{
		Cmd:      r.cmd,
		StdOut:   trimTrailingNewlines(string(outcome.StdOut)),
		StdErr:   trimTrailingNewlines(string(outcome.StdErr)),
		ExitCode: outcome.ExitCode,
	}

	logger.Debug("execution finished", "exitCode", res.ExitCode)

	if r.verbose {
		fmt.Fprintf(r.trace, "stdout:\n '%s'\n\n", res.StdOut)
		fmt.Fprintf(r.trace, "stderr:\n '%s'\n\n", res.StdErr)
		fmt.Fprintf(r.trace, "exitcode: '%d'\n\n", res.ExitCode)
	}

	return res, nil
}

// MustRun executes the command like Run, discarding the result on success.
// It panics, wrapping ErrCommandFailed, if Run returns an error or the
// command exits with a non-zero code. Intended only for call sites that
// treat any command failure as fatal.
func (r *Runner) MustRun(ctx context.Context) {
	res, err := r.Run(ctx)
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrCommandFailed, err))
	}

	if res.ExitCode != 0 {
		panic(fmt.Errorf("%w: exit code %d", ErrCommandFailed, res.ExitCode))
	}
}

// spec resolves the command text into a process spec using the strategy
// selected by the shell flag.
func (r *Runner) spec(ctx context.Context) (*runner.Spec, error) {
	if r.shell {
		return &runner.Spec{
			Path: shell.Default(ctx),
			Args: shell.Args(r.cmd),
		}, nil
	}

	path, args, err := shell.Split(ctx, r.cmd)
	if err != nil {
		return nil, errors.Join(runner.ErrCouldNotStartProcess, err)
	}

	return &runner.Spec{
		Path: path,
		Args: args,
	}, nil
}

// trimTrailingNewlines removes trailing CR and LF characters. Other trailing
// whitespace is preserved so that output ending in spaces or tabs survives
// the round trip.
func trimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\r\n")
}
