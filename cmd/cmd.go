// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/runcmd/cmd/repl"
	"github.com/matt-FFFFFF/runcmd/cmd/run"
	"github.com/matt-FFFFFF/runcmd/cmd/version"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		repl.ReplCmd,
		version.VersionCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "runcmd",
	Description: `Runcmd executes a single operating system command and reports its
exit code, stdout and stderr. Commands run directly with naive whitespace
tokenization, or through the platform shell with the --shell flag.`,
	Usage:     "runcmd run -- echo hello",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
