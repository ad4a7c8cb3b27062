// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner spawns a single child process and captures its exit code,
// stdout and stderr. It is fully synchronous: Run blocks the calling
// goroutine until the child has exited and both output pipes are drained.
// Captured output is capped at 8MB per stream.
package runner
