// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for mwmdiff. It wires flags,
// validators and actions for the make, plan, check and report subcommands.
package command
