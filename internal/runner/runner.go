// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/matt-FFFFFF/runcmd/internal/ctxlog"
)

const maxBufferSize = 8 * 1024 * 1024 // 8MB

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrWaitFailed is returned when waiting for the child process failed.
	ErrWaitFailed = errors.New("failed to wait for process")
)

// Spec describes a single process execution: the resolved executable path
// and its arguments, not including the executable name itself.
type Spec struct {
	Path string
	Args []string
}

// Outcome is the raw result of one spawn and wait cycle. The exit code is -1
// when the child was terminated without reporting one (e.g. by a signal).
type Outcome struct {
	ExitCode int
	StdOut   []byte
	StdErr   []byte
}

// capture is the result of draining one output pipe.
type capture struct {
	data []byte
	err  error
}

// Run spawns the process described by the spec, blocks until it exits and
// its output pipes are drained, and returns the captured outcome.
//
// The pipes are drained concurrently with the child, so a child writing more
// than the kernel pipe buffer never blocks on a full pipe while Run waits
// for it to exit.
//
// A non-zero exit code is not an error. Errors are reserved for the spawn
// failing or the output capture failing; in those cases the returned outcome
// is nil. The context carries the logger only; it does not cancel the child.
func (s *Spec) Run(ctx context.Context) (*Outcome, error) {
	logger := ctxlog.Logger(ctx).With("path", s.Path, "args", s.Args)

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	execName := filepath.Base(s.Path)
	args := slices.Concat([]string{execName}, s.Args)

	logger.Debug("starting process")

	ps, err := os.StartProcess(s.Path, args, &os.ProcAttr{
		Files: []*os.File{os.Stdin, wOut, wErr},
	})
	if err != nil {
		closeAll(rOut, wOut, rErr, wErr)
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	// The child holds its own copies of the write ends. Close ours now so
	// the drains see EOF as soon as the child exits.
	_ = wOut.Close()
	_ = wErr.Close()

	outCh := drain(ctx, rOut)
	errCh := drain(ctx, rErr)

	state, psErr := ps.Wait()

	stdout := <-outCh
	stderr := <-errCh

	closeAll(rOut, rErr)

	if psErr != nil {
		return nil, errors.Join(ErrWaitFailed, psErr)
	}

	out := &Outcome{
		ExitCode: state.ExitCode(),
		StdOut:   stdout.data,
		StdErr:   stderr.data,
	}

	logger.Debug("process finished", "exitCode", out.ExitCode,
		"stdoutBytes", len(out.StdOut), "stderrBytes", len(out.StdErr))

	if err := errors.Join(stdout.err, stderr.err); err != nil {
		return nil, err
	}

	return out, nil
}

// drain reads the pipe to EOF in the background so the child never blocks
// on a full pipe buffer. The channel is buffered; the goroutine always
// terminates once the write ends are closed.
func drain(ctx context.Context, r io.Reader) <-chan capture {
	ch := make(chan capture, 1)

	go func() {
		data, err := readAllUpToMax(ctx, r, maxBufferSize)
		ch <- capture{data: data, err: err}
	}()

	return ch
}

// readAllUpToMax reads to EOF, retaining at most maxBufferSize bytes.
// Anything beyond the cap is consumed and discarded so the writer is never
// left blocked on a full pipe.
func readAllUpToMax(ctx context.Context, r io.Reader, maxBufferSize int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBufferSize+1)
	if err != nil && err != io.EOF {
		return nil, errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBufferSize {
		ctxlog.Debug(ctx, "buffer overflow in readAllUpToMax",
			"bytesRead", n,
			"maxBytes", maxBufferSize,
		)

		discarded, _ := io.Copy(io.Discard, r)
		ctxlog.Debug(ctx, "discarded output beyond cap", "bytes", discarded)

		return buf.Bytes()[:maxBufferSize], ErrBufferOverflow
	}

	return buf.Bytes(), nil
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
