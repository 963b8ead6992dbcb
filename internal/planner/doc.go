// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package planner turns catalog snapshots into diff pair requests and
// prepares the per-old-version output directories beneath the new snapshot.
package planner
