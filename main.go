// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mwmdiff/mwmdiff/internal/command"
	"github.com/mwmdiff/mwmdiff/internal/config"
	"github.com/mwmdiff/mwmdiff/internal/history"
	"github.com/mwmdiff/mwmdiff/internal/log"
	"github.com/mwmdiff/mwmdiff/internal/version"
)

var ctx = context.Background()

// commands are the subcommand names; anything else in arg[1] that is not a
// flag is taken as the region of the legacy three-argument form.
var commands = map[string]bool{
	"make":   true,
	"plan":   true,
	"check":  true,
	"report": true,
	"help":   true,
}

// boolFlags never take a separate value argument.
var boolFlags = map[string]bool{
	"c":          true,
	"color":      true,
	"h":          true,
	"help":       true,
	"no-history": true,
	"t":          true,
	"titles":     true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs rewrites the legacy `mwmdiff <region> <new> <old_root>`
// form to `make`, injects the configured defaults and drops repeated flags.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") && !commands[args[1]] {
		args = append([]string{args[0], "make"}, args[1:]...)
		log.Debugf("legacy invocation rewritten: args=%v", args)
	}
	args = injectConfigDefaults(args)
	return deduplicateFlags(args)
}

// injectConfigDefaults inserts the <command>.defaults entries of the config
// file right after the subcommand. Explicit arguments come later and so win
// in deduplicateFlags.
func injectConfigDefaults(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") { //nolint:mnd // program and subcommand
		return args
	}
	entries, err := config.GetStringSlice(args[1] + ".defaults")
	if err != nil {
		return args
	}
	args = injectArgs(args, entries, 2) //nolint:mnd
	log.Debugf("args after defaults: args=%v", args)
	return args
}

// injectArgs splits each entry on whitespace and inserts the fields at index
// at of args.
func injectArgs(args []string, entries []string, at int) []string {
	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}
	if len(expanded) == 0 {
		return args
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:at]...)
	out = append(out, expanded...)
	return append(out, args[at:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag after the
// subcommand, together with its value. Positional arguments keep their order.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 { //nolint:mnd
		return args
	}

	type group struct {
		name   string
		tokens []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			groups = append(groups, group{tokens: args[i:]})
			break
		}
		if a == "-" || !strings.HasPrefix(a, "-") {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		g := group{tokens: []string{a}}
		name := strings.TrimLeft(a, "-")
		if k, _, found := strings.Cut(name, "="); found {
			g.name = k
		} else {
			g.name = name
			if !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				g.tokens = append(g.tokens, args[i+1])
				i++
			}
		}
		groups = append(groups, g)
	}

	last := make(map[string]int, len(groups))
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name != "" && last[g.name] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

// purgeHistory drops history entries older than history.retention_days.
func purgeHistory() {
	if _, ok, err := history.EnsureBaseDir(); err != nil || !ok {
		if err != nil {
			log.Debugf("history ensure err: err=%v", err)
		}
		return
	}
	days, err := config.GetInt("history.retention_days", 30) //nolint:mnd
	if err != nil {
		log.Debugf("history retention err: err=%v", err)
		return
	}
	if err := history.Purge(days); err != nil {
		log.Debugf("history purge err: err=%v", err)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	purgeHistory()

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
