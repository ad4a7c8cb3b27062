// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runcmd

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/runcmd/internal/ctxlog"
	"github.com/matt-FFFFFF/runcmd/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testContext() context.Context {
	return ctxlog.New(context.Background(), ctxlog.DefaultLogger)
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("test relies on a POSIX shell")
	}
}

func TestRun_DirectMode(t *testing.T) {
	defer goleak.VerifyNone(t)
	skipOnWindows(t)

	res, err := New("echo hello").Run(testContext())
	require.NoError(t, err)

	assert.Equal(t, "echo hello", res.Cmd)
	assert.Equal(t, "hello", res.StdOut)
	assert.Empty(t, res.StdErr)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRun_ShellMode(t *testing.T) {
	defer goleak.VerifyNone(t)
	skipOnWindows(t)

	res, err := New("echo hello | wc -l").WithShell().Run(testContext())
	require.NoError(t, err)

	assert.Equal(t, "echo hello | wc -l", res.Cmd)
	assert.Equal(t, "1", strings.TrimSpace(res.StdOut), "shell mode must honor the pipe")
	assert.Equal(t, 0, res.ExitCode)
}

func TestRun_DirectModeTreatsMetacharactersAsTokens(t *testing.T) {
	skipOnWindows(t)

	// No pipe is created in direct mode: echo receives the metacharacters
	// as plain arguments.
	res, err := New("echo hello | wc -l").Run(testContext())
	require.NoError(t, err)

	assert.Equal(t, "hello | wc -l", res.StdOut)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)

	res, err := New("exit 7").WithShell().Run(testContext())
	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitCode)
	assert.Equal(t, "exit 7", res.Cmd)
}

func TestRun_NegativeExitWrapsTo255(t *testing.T) {
	skipOnWindows(t)

	// POSIX sh implementations disagree on "exit -1"; bash wraps it to 255.
	if _, err := os.Stat("/bin/bash"); err != nil {
		t.Skip("bash not available")
	}

	t.Setenv("SHELL", "/bin/bash")

	res, err := New("echo foo; >&2 echo bar; exit -1").WithShell().Run(testContext())
	require.NoError(t, err)

	assert.Equal(t, 255, res.ExitCode)
	assert.Equal(t, "foo", res.StdOut)
	assert.Equal(t, "bar", res.StdErr)
}

func TestRun_SpawnFailure(t *testing.T) {
	res, err := New("definitely-not-a-command-xyz").Run(testContext())

	assert.Nil(t, res)
	require.ErrorIs(t, err, runner.ErrCouldNotStartProcess)
}

func TestRun_EmptyCommand(t *testing.T) {
	res, err := New("").Run(testContext())

	assert.Nil(t, res)
	require.Error(t, err)
}

func TestRun_TrimsTrailingNewlinesOnly(t *testing.T) {
	skipOnWindows(t)

	res, err := New(`printf 'a b \nc\n\n'`).WithShell().Run(testContext())
	require.NoError(t, err)

	// Interior newlines and trailing spaces survive; trailing LFs do not.
	assert.Equal(t, "a b \nc", res.StdOut)
}

func TestBuilderOptionsAreComposableAndIdempotent(t *testing.T) {
	r := New("echo hello").WithShell().WithVerbose().WithShell().WithVerbose()

	assert.True(t, r.shell)
	assert.True(t, r.verbose)
	assert.Equal(t, "echo hello", r.cmd)

	r2 := New("echo hello").WithVerbose().WithShell()
	assert.True(t, r2.shell)
	assert.True(t, r2.verbose)
}

func TestRun_VerboseTrace(t *testing.T) {
	skipOnWindows(t)

	buf := &bytes.Buffer{}
	r := New("echo hello").WithVerbose()
	r.trace = buf

	res, err := r.Run(testContext())
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)

	out := buf.String()
	assert.Contains(t, out, "echo hello")
	assert.Contains(t, out, "stdout:")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "stderr:")
	assert.Contains(t, out, "exitcode: '0'")
}

func TestRun_VerboseSpawnFailureEmitsNoTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New("definitely-not-a-command-xyz").WithVerbose()
	r.trace = buf

	res, err := r.Run(testContext())

	assert.Nil(t, res)
	require.Error(t, err)
	assert.Empty(t, buf.String(), "a failed lookup must not leave a dangling trace block")
}

func TestMustRun_Success(t *testing.T) {
	skipOnWindows(t)

	assert.NotPanics(t, func() {
		New("exit 0").WithShell().MustRun(testContext())
	})
}

func TestMustRun_NonZeroExitPanics(t *testing.T) {
	skipOnWindows(t)

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error")
		assert.ErrorIs(t, err, ErrCommandFailed)
	}()

	New("exit 1").WithShell().MustRun(testContext())
}

func TestMustRun_SpawnFailurePanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error")
		assert.ErrorIs(t, err, ErrCommandFailed)
		assert.ErrorIs(t, err, runner.ErrCouldNotStartProcess)
	}()

	New("definitely-not-a-command-xyz").MustRun(testContext())
}

func TestRun_CmdRoundTrip(t *testing.T) {
	skipOnWindows(t)

	cmds := []string{
		"echo hello",
		"echo foo; >&2 echo bar; exit 2",
		"   echo   spaced   ",
	}

	for _, cmd := range cmds {
		res, err := New(cmd).WithShell().Run(testContext())
		require.NoError(t, err)
		assert.Equal(t, cmd, res.Cmd, "cmd field must equal the original input")
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single trailing LF", "hello\n", "hello"},
		{"CRLF", "hello\r\n", "hello"},
		{"multiple trailing LFs", "hello\n\n\n", "hello"},
		{"trailing spaces preserved", "hello  \n", "hello  "},
		{"interior newlines preserved", "a\nb\n", "a\nb"},
		{"empty", "", ""},
		{"only newlines", "\r\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trimTrailingNewlines(tt.input))
		})
	}
}
