// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/mwmdiff/mwmdiff/internal/batch"
	"github.com/mwmdiff/mwmdiff/internal/catalog"
	"github.com/mwmdiff/mwmdiff/internal/differ"
	"github.com/mwmdiff/mwmdiff/internal/history"
	"github.com/mwmdiff/mwmdiff/internal/log"
	"github.com/mwmdiff/mwmdiff/internal/meta"
	"github.com/mwmdiff/mwmdiff/internal/metrics"
	"github.com/mwmdiff/mwmdiff/internal/output"
	"github.com/mwmdiff/mwmdiff/internal/planner"
)

// makeCommandAction is the action handler for the "make" subcommand. It runs
// one batch, logging a line per non-fatal outcome, then records the summary.
// A fatal outcome is returned as the command error.
func makeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	region, newDir, oldRoot, err := pairArgs(cmd)
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	tool := cmd.String("tool")
	p := &planner.Planner{
		Region:  region,
		NewDir:  newDir,
		DataExt: cmd.String("data-ext"),
		DiffExt: cmd.String("diff-ext"),
	}
	d := &batch.Driver{
		Executor: differ.NewExecutor(tool),
		Observer: log.NewObserver(region, m.RunID),
		Depth:    cmd.Int("depth"),
		RunID:    m.RunID,
	}

	log.Tracef("make: planner=%+v depth=%d tool=%s", *p, d.Depth, tool)
	sum, runErr := d.Run(ctx, p, catalog.New(oldRoot, newDir))

	var fatal *batch.FatalError
	if errors.As(runErr, &fatal) && fatal.Result.ToolOutput != "" {
		log.Errorf("%s output:\n%s", tool, fatal.Result.ToolOutput)
	}
	if sum == nil {
		return runErr
	}

	record(cmd, sum, newDir)

	if format != "" {
		if err := output.WriteSummary(cmd.Root().Writer, sum, format, renderOptions(cmd)); err != nil && runErr == nil {
			return err
		}
	}
	return runErr
}

// record saves sum to the history store, unless disabled, and the metrics
// textfile. Failures are logged; they never change the outcome of the run.
func record(cmd *cli.Command, sum *batch.Summary, newDir string) {
	if !cmd.Bool("no-history") {
		if err := history.Save(sum, newDir); err != nil {
			log.WithError(err).Warn("run summary not recorded")
		}
	}

	if path := cmd.String("metrics-file"); path != "" {
		rec := metrics.NewRecorder()
		rec.Observe(sum)
		if err := rec.WriteTextfile(path); err != nil {
			log.WithError(err).Warn("metrics not exported")
		}
	}
}

// makeCommandBuilder constructs the cli.Command for "make", wiring metadata,
// flags, and action handlers.
func makeCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.Config.Source
	return &cli.Command{
		Name:      "make",
		Usage:     "compute diffs against the most recent old versions",
		UsageText: "mwmdiff make <region> <new_version_dir> <old_version_root> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			NewToolFlag("make", path),
			NameSpacedValueChainFlagFromConfigFile("make", path, &cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write Prometheus metrics to this textfile",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MWMDIFF_METRICS_FILE"),
				),
			}),
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "do not record the run summary",
				Value: false,
			},
		}, NewPairFlags("make", path)...), NewGlobalFlags("make", path, "")...),
		Action: makeCommandAction,
	}
}
