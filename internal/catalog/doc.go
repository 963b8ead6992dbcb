// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package catalog discovers the historical snapshot directories that a new
// map snapshot can be diffed against.
package catalog
