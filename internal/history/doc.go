// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package history keeps the summary of the latest run for each region and
// new snapshot directory, so `mwmdiff report` can show it later.
//
// Entries are JSON files under Dir(), one per (region, new dir) pair, named
// by a SHA-256 of the inputs. Setting MWMDIFF_HISTORY to "0" or "false"
// disables writes.
package history
