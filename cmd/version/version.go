// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package version prints the build version information.
package version

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/runcmd"
	"github.com/urfave/cli/v3"
)

// VersionCmd prints the version and commit of the build.
var VersionCmd = &cli.Command{
	Name:        "version",
	Description: "Print the version and commit of this build.",
	Action: func(_ context.Context, cmd *cli.Command) error {
		fmt.Fprintf(cmd.Writer, "runcmd %s (%s)\n", runcmd.Version, runcmd.Commit)
		return nil
	},
}
