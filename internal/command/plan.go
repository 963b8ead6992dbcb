// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mwmdiff/mwmdiff/internal/catalog"
	"github.com/mwmdiff/mwmdiff/internal/differ"
	"github.com/mwmdiff/mwmdiff/internal/log"
	"github.com/mwmdiff/mwmdiff/internal/meta"
	"github.com/mwmdiff/mwmdiff/internal/output"
	"github.com/mwmdiff/mwmdiff/internal/planner"
)

// statusPending marks a pair that make would hand to the diff tool.
const statusPending = "Pending"

// planCommandAction is the action handler for the "plan" subcommand. It lists
// the pairs make would attempt, with the outcome that is already known for
// each, without creating directories or running the tool.
func planCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	region, newDir, oldRoot, err := pairArgs(cmd)
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	p := &planner.Planner{
		Region:  region,
		NewDir:  newDir,
		DataExt: cmd.String("data-ext"),
		DiffExt: cmd.String("diff-ext"),
	}
	plan := output.Plan{
		Region: region,
		NewDir: newDir,
		New:    p.NewFile(),
		Status: "present",
	}
	if !fileExists(plan.New) {
		plan.Status = "missing"
	}

	depth := cmd.Int("depth")
	for s, err := range catalog.New(oldRoot, newDir).Versions() {
		if err != nil {
			return err
		}
		if len(plan.Pairs) == depth {
			break
		}
		req := p.Preview(s)
		plan.Pairs = append(plan.Pairs, output.PlanRow{
			Version: s.Version.String(),
			Old:     req.Old,
			Out:     req.Out,
			Status:  previewStatus(req),
		})
	}

	return output.WritePlan(cmd.Root().Writer, plan, format, renderOptions(cmd))
}

// previewStatus names the outcome make would reach for req without running
// the tool, or statusPending when the tool would run.
func previewStatus(req differ.PairRequest) string {
	switch {
	case !fileExists(req.New):
		return differ.NoNewVersion.String()
	case !fileExists(req.Old):
		return differ.NoOldVersion.String()
	case fileExists(req.Out):
		return differ.NothingToDo.String()
	}
	return statusPending
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// planCommandBuilder constructs the cli.Command for "plan".
func planCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.Config.Source
	return &cli.Command{
		Name:      "plan",
		Usage:     "preview the diff pairs make would attempt",
		UsageText: "mwmdiff plan <region> <new_version_dir> <old_version_root> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(NewPairFlags("plan", path), NewGlobalFlags("plan", path, string(output.Text))...),
		Action: planCommandAction,
	}
}
