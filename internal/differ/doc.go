// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes a single map diff. Given the old snapshot file, the
// new snapshot file and the output path, an Executor decides whether any work
// is needed, runs the external diff tool when it is, and classifies the
// result into an Outcome.
//
// The byte-level delta itself is produced by the external tool; this package
// only drives it and checks that the produced diff is worth shipping.
package differ
