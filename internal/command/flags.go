// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/mwmdiff/mwmdiff/internal/differ"
	"github.com/mwmdiff/mwmdiff/internal/output"
	"github.com/mwmdiff/mwmdiff/internal/planner"
)

// NewGlobalFlags returns the rendering flags shared by every command that
// prints results. defaultOutput is the --output value when none is given.
func NewGlobalFlags(ns, path, defaultOutput string) []cli.Flag {
	padding := &cli.IntFlag{
		Name:   "padding",
		Usage:  "spaces between text table columns",
		Hidden: true,
		Value:  2, //nolint:mnd
	}
	configSources(&padding.Sources, ns, padding.Name, path)

	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   output.AutoColor(os.Stdout),
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   defaultOutput,
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
		padding,
	}
}

// NewPairFlags returns the flags that shape the diff pairs: depth and the
// file extensions.
func NewPairFlags(ns, path string) []cli.Flag {
	depth := &cli.IntFlag{
		Name:    "depth",
		Aliases: []string{"d"},
		Usage:   "number of most recent old versions to diff against",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MWMDIFF_DEPTH"),
		),
		Value: 1,
		Validator: func(value int) error {
			return FlagValidators(value, DepthValidator)
		},
	}
	configSources(&depth.Sources, ns, depth.Name, path)

	return []cli.Flag{
		depth,
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "data-ext",
			Usage: "extension of map data files",
			Value: planner.DefaultDataExt,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "diff-ext",
			Usage: "extension of diff files",
			Value: planner.DefaultDiffExt,
		}),
	}
}

// NewToolFlag constructs the --tool flag naming the external diff tool.
func NewToolFlag(ns, path string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
		Name:  "tool",
		Usage: "diff tool binary, looked up on PATH",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MWMDIFF_TOOL"),
		),
		Value: differ.DefaultTool,
	})
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	configSources(&flag.Sources, ns, flag.Name, path)
	return flag
}

// configSources appends <ns>.<name> and then <name> from the YAML file at path
// to chain. Nothing is added without a config file.
func configSources(chain *cli.ValueSourceChain, ns, name, path string) {
	if path == "" {
		return
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
}
