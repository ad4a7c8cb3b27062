// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger that can be used to log messages.
// It uses the slog package for structured logging and supports different log levels.
//
// The default is a pretty console handler that formats log messages in a
// human-readable way. The log level is read from the RUNCMD_LOG_LEVEL
// environment variable at startup.
package ctxlog
