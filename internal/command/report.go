// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/mwmdiff/mwmdiff/internal/history"
	"github.com/mwmdiff/mwmdiff/internal/log"
	"github.com/mwmdiff/mwmdiff/internal/meta"
	"github.com/mwmdiff/mwmdiff/internal/output"
)

// reportCommandAction prints the last recorded summary for a region and new
// snapshot directory.
func reportCommandAction(ctx context.Context, cmd *cli.Command) error {
	args, err := positionalArgs(cmd, "region", "new_version_dir")
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	e, err := history.Load(args[0], args[1])
	if err != nil {
		return err
	}
	log.Debugf("history read: path=%s", e.Path)

	w := cmd.Root().Writer
	if format == output.Text {
		fmt.Fprintf(w, "recorded %s\n", humanize.Time(e.Saved))
	}
	return output.WriteSummary(w, e.Summary, format, renderOptions(cmd))
}

func reportCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "show the last recorded run",
		UsageText: "mwmdiff report <region> <new_version_dir> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewGlobalFlags("report", meta.Config.Source, string(output.Text)),
		Action: reportCommandAction,
	}
}
