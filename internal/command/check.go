// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mwmdiff/mwmdiff/internal/differ"
	"github.com/mwmdiff/mwmdiff/internal/meta"
	"github.com/mwmdiff/mwmdiff/internal/version"
)

// checkCommandAction verifies that the diff tool resolves.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	path, err := differ.LookupTool(cmd.String("tool"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "%s: %s: %s\n", version.UserAgent(), cmd.String("tool"), path)
	return err
}

func checkCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "verify the diff tool is installed",
		UsageText: "mwmdiff check [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewToolFlag("check", meta.Config.Source),
		},
		Action: checkCommandAction,
	}
}
