// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runcmd runs a single operating system command and collects its
// exit code, stdout and stderr into a simple result value.
//
// A Runner is built from the command text and two independent options:
//
//	res, err := runcmd.New("echo hello").Run(ctx)
//
// WithShell hands the text verbatim to the platform shell so that pipes,
// quoting and redirection work:
//
//	res, err := runcmd.New("echo hello | wc -l").WithShell().Run(ctx)
//
// WithVerbose prints the command and its outcome to stdout. MustRun is a
// convenience for call sites that treat any failure as fatal: it panics on
// spawn failure or a non-zero exit code.
//
// Execution is synchronous and unmanaged: one child process per Run call,
// no timeout, no cancellation, no shared state between calls.
package runcmd
