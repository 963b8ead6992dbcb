// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package metrics turns batch summaries into Prometheus metrics and writes
// them as a node_exporter textfile.
package metrics
