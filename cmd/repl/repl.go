// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl provides an interactive prompt that runs one command per line.
package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/runcmd"
	"github.com/matt-FFFFFF/runcmd/internal/resultwriter"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const (
	shellFlag   = "shell"
	verboseFlag = "verbose"
	prompt      = "runcmd> "
)

// ReplCmd reads command lines interactively and runs each one synchronously.
var ReplCmd = &cli.Command{
	Name: "repl",
	Description: `Start an interactive prompt. Each submitted line is executed as one
command and its result printed. Type "exit", "quit" or press Ctrl+C to leave.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    shellFlag,
			Aliases: []string{"s"},
			Usage:   "Run each command through the platform shell",
		},
		&cli.BoolFlag{
			Name:    verboseFlag,
			Aliases: []string{"v"},
			Usage:   "Print each command and its outcome while running",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)
	fmt.Fprintln(cmd.Writer, `Type "exit", "quit" or press Ctrl+C to leave.`)

	for {
		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(cmd.Writer, "Aborted")
			return nil
		}

		if err != nil {
			return cli.Exit("Error reading line: "+err.Error(), 1)
		}

		if input == "exit" || input == "quit" {
			return nil
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)
		runOne(ctx, cmd, input)
	}
}

// runOne executes a single line and prints its result. Errors are reported
// to the prompt and never end the session.
func runOne(ctx context.Context, cmd *cli.Command, input string) {
	r := runcmd.New(input)

	if cmd.Bool(shellFlag) {
		r = r.WithShell()
	}

	if cmd.Bool(verboseFlag) {
		r = r.WithVerbose()
	}

	res, err := r.Run(ctx)
	if err != nil {
		fmt.Fprintf(cmd.Writer, "error: %s\n", err.Error())
		return
	}

	if err := resultwriter.Write(cmd.Writer, res, resultwriter.FormatText); err != nil {
		fmt.Fprintf(cmd.Writer, "error: %s\n", err.Error())
	}
}
