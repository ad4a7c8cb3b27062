// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resultwriter renders an execution result to a writer in one of
// three formats: colorized human-readable text, JSON, or YAML.
package resultwriter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/runcmd"
	"github.com/matt-FFFFFF/runcmd/internal/color"
)

// Format selects the output rendering.
type Format string

const (
	// FormatText is a colorized human-readable rendering.
	FormatText Format = "text"
	// FormatJSON renders the result as a JSON object.
	FormatJSON Format = "json"
	// FormatYAML renders the result as a YAML document.
	FormatYAML Format = "yaml"
)

var (
	// ErrUnknownFormat is returned when the format string is not recognized.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrWriteResult is returned when the result could not be rendered.
	ErrWriteResult = errors.New("failed to write result")
)

// view is the serialization shape shared by the JSON and YAML renderings.
type view struct {
	Cmd      string `json:"cmd" yaml:"cmd"`
	StdOut   string `json:"stdout" yaml:"stdout"`
	StdErr   string `json:"stderr" yaml:"stderr"`
	ExitCode int    `json:"exitcode" yaml:"exitcode"`
}

// ParseFormat validates a format string from user input.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write renders the result to the writer in the given format.
func Write(w io.Writer, res *runcmd.Result, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatYAML:
		return writeYAML(w, res)
	case FormatText:
		return writeText(w, res)
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func writeText(w io.Writer, res *runcmd.Result) error {
	var statusStr, labelPrefix string

	if res.ExitCode == 0 {
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	} else {
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	}

	if _, err := fmt.Fprintf(w, "%s %s%s%s (exit code: %d)\n",
		statusStr,
		labelPrefix,
		res.Cmd,
		color.ControlString(color.Reset),
		res.ExitCode,
	); err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	if res.StdOut != "" {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", color.Colorize("stdout:", color.Faint), res.StdOut); err != nil {
			return errors.Join(ErrWriteResult, err)
		}
	}

	if res.StdErr != "" {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", color.Colorize("stderr:", color.FgYellow), res.StdErr); err != nil {
			return errors.Join(ErrWriteResult, err)
		}
	}

	return nil
}

func writeJSON(w io.Writer, res *runcmd.Result) error {
	// colorjson formats generic maps, so round-trip through encoding/json.
	raw, err := json.Marshal(viewOf(res))
	if err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	formatter := colorjson.NewFormatter()
	formatter.Indent = 2
	formatter.DisabledColor = !color.Enabled()

	pretty, err := formatter.Marshal(obj)
	if err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	if _, err := fmt.Fprintf(w, "%s\n", pretty); err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	return nil
}

func writeYAML(w io.Writer, res *runcmd.Result) error {
	out, err := yaml.Marshal(viewOf(res))
	if err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	if _, err := w.Write(out); err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	return nil
}

func viewOf(res *runcmd.Result) view {
	return view{
		Cmd:      res.Cmd,
		StdOut:   res.StdOut,
		StdErr:   res.StdErr,
		ExitCode: res.ExitCode,
	}
}
