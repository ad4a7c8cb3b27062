// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color provides functions to determine if color output is enabled
// and to colorize strings with ANSI escape codes.
// The environment variables NO_COLOR and FORCE_COLOR override the default
// behavior, which is to enable color only when stdout is a terminal.
package color
