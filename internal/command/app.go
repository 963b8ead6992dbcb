// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/mwmdiff/mwmdiff/internal/config"
	"github.com/mwmdiff/mwmdiff/internal/log"
	"github.com/mwmdiff/mwmdiff/internal/meta"
)

// InitApp builds the command tree for args. The config file is loaded here,
// namespaced to the subcommand, so flags can fall back to it.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the subcommand
	// and also the namespace key used when retrieving config values. arg[1]
	// could be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	config.Config.Namespace = ns
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNoConfigFile) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Debugf("config: source=%s namespace=%s", cfg.Source, ns)

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		RunID:       uuid.NewString(),
	}

	app := &cli.Command{
		Name:  "mwmdiff",
		Usage: "MWM map diff generator",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "mwmdiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		makeCommandBuilder(meta),
		planCommandBuilder(meta),
		checkCommandBuilder(meta),
		reportCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
