// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cfg loads optional CLI defaults from a YAML file in the user's
// home directory. A missing file is not an error; the zero value of Config
// matches the library defaults (direct mode, not verbose, text output).
package cfg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/runcmd/internal/ctxlog"
	"github.com/spf13/afero"
)

// FileName is the defaults file looked up in the user's home directory.
const FileName = ".runcmd.yaml"

var (
	// ErrReadConfig is returned when the defaults file exists but cannot be read.
	ErrReadConfig = errors.New("failed to read config file")
	// ErrParseConfig is returned when the defaults file is not valid YAML.
	ErrParseConfig = errors.New("failed to parse config file")
	// ErrInvalidConfig is returned when the defaults file contains invalid values.
	ErrInvalidConfig = errors.New("invalid config")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Config holds CLI defaults. Command line flags take precedence over it.
type Config struct {
	// Shell makes shell mode the default for the run command.
	Shell bool `yaml:"shell"`
	// Verbose makes verbose tracing the default for the run command.
	Verbose bool `yaml:"verbose"`
	// Format is the default output format: text, json or yaml.
	Format string `yaml:"format"`
}

// Validate checks the config values, accumulating all problems.
func (c *Config) Validate() error {
	var err *multierror.Error

	switch c.Format {
	case "", "text", "json", "yaml":
	default:
		err = multierror.Append(err, fmt.Errorf("%w: format must be one of text, json, yaml; got %q",
			ErrInvalidConfig, c.Format))
	}

	return err.ErrorOrNil()
}

// Load reads the defaults file from the user's home directory.
// A missing home directory or defaults file yields the zero config.
func Load(ctx context.Context) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		ctxlog.Debug(ctx, "no home directory, using default config", "error", err)
		return &Config{}, nil
	}

	return LoadFile(ctx, filepath.Join(home, FileName))
}

// LoadFile reads and validates the defaults file at the given path.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	fs := FsFactory()

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	if !exists {
		ctxlog.Debug(ctx, "config file not found, using defaults", "path", path)
		return &Config{}, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "loaded config", "path", path, "shell", c.Shell, "verbose", c.Verbose, "format", c.Format)

	return c, nil
}
