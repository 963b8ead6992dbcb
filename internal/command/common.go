// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mwmdiff/mwmdiff/internal/meta"
	"github.com/mwmdiff/mwmdiff/internal/output"
	"github.com/mwmdiff/mwmdiff/internal/util"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// positionalArgs returns exactly len(names) non-blank positional arguments.
// Blank arguments are looked for in the raw invocation because the parser
// stops collecting positionals at an empty one.
func positionalArgs(cmd *cli.Command, names ...string) ([]string, error) {
	if err := checkBlankArgs(cmd, rawArgs(cmd), names); err != nil {
		return nil, err
	}
	args := cmd.Args().Slice()
	if len(args) != len(names) {
		return nil, fmt.Errorf("expected %d arguments (%s), got %d",
			len(names), strings.Join(names, " "), len(args))
	}
	return args, nil
}

// rawArgs returns what followed the subcommand name on the command line.
func rawArgs(cmd *cli.Command) []string {
	args := GetMeta(cmd).Args
	if len(args) < 2 || args[1] != cmd.Name { //nolint:mnd
		return nil
	}
	return args[2:]
}

// checkBlankArgs walks args the way the parser does, skipping flags and
// their values, and reports the first blank positional by name.
func checkBlankArgs(cmd *cli.Command, args []string, names []string) error {
	bools := map[string]bool{"help": true, "h": true}
	for _, f := range cmd.Flags {
		if _, ok := f.(*cli.BoolFlag); ok {
			for _, n := range f.Names() {
				bools[n] = true
			}
		}
	}

	pos := 0
	terminated := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !terminated {
			if a == "--" {
				terminated = true
				continue
			}
			if strings.HasPrefix(a, "-") && a != "-" {
				name, _, inline := strings.Cut(strings.TrimLeft(a, "-"), "=")
				if !inline && !bools[name] {
					i++
				}
				continue
			}
		}
		if strings.TrimSpace(a) == "" {
			if pos < len(names) {
				return fmt.Errorf("%s must not be blank", names[pos])
			}
			return fmt.Errorf("argument %d must not be blank", pos+1)
		}
		pos++
	}
	return nil
}

// pairArgs returns the region, new_version_dir and old_version_root
// arguments. A missing old root has no candidates and a missing new dir is
// reported by the batch as NoNewVersion; an old root that is not a directory
// is an error.
func pairArgs(cmd *cli.Command) (region, newDir, oldRoot string, err error) {
	args, err := positionalArgs(cmd, "region", "new_version_dir", "old_version_root")
	if err != nil {
		return "", "", "", err
	}
	if _, err := util.ExistingDir(args[2]); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", "", "", fmt.Errorf("old_version_root: %w", err)
	}
	return args[0], args[1], args[2], nil
}

// outputFormat parses --output. An empty value yields an empty Format.
func outputFormat(cmd *cli.Command) (output.Format, error) {
	s := cmd.String("output")
	if s == "" {
		return "", nil
	}
	return output.ParseFormat(s)
}

func renderOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
	}
}
