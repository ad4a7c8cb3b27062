// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"strings"

	"github.com/matt-FFFFFF/runcmd"
	"github.com/matt-FFFFFF/runcmd/internal/cfg"
	"github.com/matt-FFFFFF/runcmd/internal/resultwriter"
	"github.com/urfave/cli/v3"
)

const (
	shellFlag   = "shell"
	verboseFlag = "verbose"
	formatFlag  = "format"
)

// RunCmd executes a single command and prints its result.
var RunCmd = &cli.Command{
	Name: "run",
	Description: `Run a single command and print its captured stdout, stderr and exit code.
By default the command text is split on whitespace and the program is executed
directly, with no quote handling. With --shell the text is handed verbatim to
the platform shell, so pipes, quoting and redirection work.
The process exits with the command's exit code.`,
	ArgsUsage: "-- COMMAND [ARGS...]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        shellFlag,
			Aliases:     []string{"s"},
			Usage:       "Run the command through the platform shell",
			DefaultText: "false",
			Value:       false,
		},
		&cli.BoolFlag{
			Name:        verboseFlag,
			Aliases:     []string{"v"},
			Usage:       "Print the command and its outcome while running",
			DefaultText: "false",
			Value:       false,
		},
		&cli.StringFlag{
			Name:        formatFlag,
			Aliases:     []string{"f"},
			Usage:       "Output format: text, json or yaml",
			DefaultText: "text",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cmdLine := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(cmdLine) == "" {
		return cli.Exit("Please provide a command to run", 1)
	}

	conf, err := cfg.Load(ctx)
	if err != nil {
		return cli.Exit("Failed to load config: "+err.Error(), 1)
	}

	// An explicitly set flag wins over the config file in both directions.
	formatStr := conf.Format
	if cmd.IsSet(formatFlag) {
		formatStr = cmd.String(formatFlag)
	}

	if formatStr == "" {
		formatStr = string(resultwriter.FormatText)
	}

	format, err := resultwriter.ParseFormat(formatStr)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	useShell := conf.Shell
	if cmd.IsSet(shellFlag) {
		useShell = cmd.Bool(shellFlag)
	}

	verbose := conf.Verbose
	if cmd.IsSet(verboseFlag) {
		verbose = cmd.Bool(verboseFlag)
	}

	r := runcmd.New(cmdLine)

	if useShell {
		r = r.WithShell()
	}

	if verbose {
		r = r.WithVerbose()
	}

	res, err := r.Run(ctx)
	if err != nil {
		return cli.Exit("Failed to run command: "+err.Error(), 1)
	}

	if err := resultwriter.Write(cmd.Root().Writer, res, format); err != nil {
		return cli.Exit("Failed to write result: "+err.Error(), 1)
	}

	if res.ExitCode != 0 {
		return cli.Exit("", res.ExitCode)
	}

	return nil
}
