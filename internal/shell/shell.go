// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell resolves the platform shell interpreter and builds argument
// vectors for the two execution strategies: handing a command line to the
// shell verbatim, or tokenizing it and resolving the program on the PATH.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/matt-FFFFFF/runcmd/internal/ctxlog"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // Directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // Command interpreter executable on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
	shellEnv             = "SHELL"      // Environment variable naming the user's shell on Unix.
)

var (
	// ErrEmptyCommand is returned when the command text contains no tokens.
	ErrEmptyCommand = errors.New("empty command")
	// ErrCommandNotFound is returned when the program is not found in the system PATH.
	ErrCommandNotFound = errors.New("command not found")
)

// Default returns the path of the platform shell interpreter.
// On Unix-like systems the SHELL environment variable takes precedence,
// falling back to /bin/sh. On Windows it is cmd.exe under SystemRoot.
func Default(ctx context.Context) string {
	if runtime.GOOS == GOOSWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv(shellEnv); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}

// Args returns the argument vector that makes the platform shell interpret
// the given command line: the "-c" switch on Unix-like systems, "/C" on
// Windows. The command line is passed verbatim; quoting, pipes and
// redirection are whatever the shell makes of them.
func Args(command string) []string {
	if runtime.GOOS == GOOSWindows {
		return []string{commandSwitchWindows, command}
	}

	return []string{commandSwitchUnix, command}
}

// Split tokenizes a command line for direct execution and resolves the first
// token to an executable on the PATH. Tokenization is a naive split on
// whitespace: there is no quote or escape handling, so an argument
// containing spaces cannot be expressed in direct mode.
func Split(ctx context.Context, command string) (string, []string, error) {
	tokens := strings.Fields(command)
	if len(tokens) == 0 {
		return "", nil, ErrEmptyCommand
	}

	path, err := lookPath(tokens[0])
	if err != nil {
		return "", nil, err
	}

	ctxlog.Debug(ctx, "resolved command", "command", tokens[0], "path", path)

	return path, tokens[1:], nil
}

// lookPath searches the PATH for a file with the given name that is not a
// directory and, except on Windows, has an executable bit set. A name
// containing a path separator is resolved as-is without searching.
func lookPath(name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator) {
		if isExecutable(name) {
			return name, nil
		}

		return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	paths := strings.Split(os.Getenv("PATH"), string(os.PathListSeparator))
	for _, p := range paths {
		if p == "" {
			continue
		}

		candidate := filepath.Join(p, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if runtime.GOOS != GOOSWindows && info.Mode()&0111 == 0 {
		return false
	}

	return true
}
