// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the optional mwmdiff YAML configuration file and
// exposes typed getters over dotted key paths. Flags read the same file via
// urfave/cli-altsrc, so the getters here serve settings without a flag, such
// as the history retention period.
package config
