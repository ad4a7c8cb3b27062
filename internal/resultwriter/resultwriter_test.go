// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package resultwriter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/runcmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleResult = &runcmd.Result{
	Cmd:      "echo hello",
	StdOut:   "hello",
	StdErr:   "oops",
	ExitCode: 2,
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteText(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, sampleResult, FormatText))

	out := buf.String()
	assert.Contains(t, out, "echo hello")
	assert.Contains(t, out, "exit code: 2")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "oops")
}

func TestWriteTextSuccessOmitsEmptyStreams(t *testing.T) {
	buf := &bytes.Buffer{}
	res := &runcmd.Result{Cmd: "true", ExitCode: 0}

	require.NoError(t, Write(buf, res, FormatText))

	out := buf.String()
	assert.Contains(t, out, "true")
	assert.NotContains(t, out, "stdout:")
	assert.NotContains(t, out, "stderr:")
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, sampleResult, FormatJSON))

	var got map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "echo hello", got["cmd"])
	assert.Equal(t, "hello", got["stdout"])
	assert.Equal(t, "oops", got["stderr"])
	assert.InDelta(t, 2, got["exitcode"], 0)
}

func TestWriteYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, sampleResult, FormatYAML))

	var got view

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "echo hello", got.Cmd)
	assert.Equal(t, "hello", got.StdOut)
	assert.Equal(t, "oops", got.StdErr)
	assert.Equal(t, 2, got.ExitCode)
}

func TestWriteUnknownFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	require.ErrorIs(t, Write(buf, sampleResult, Format("xml")), ErrUnknownFormat)
}
