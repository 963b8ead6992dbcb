// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package batch drives a depth-bounded run of diff pairs for one region.
//
// Pairs are processed sequentially in catalog order (newest old snapshot
// first). NoNewVersion and InternalError abort the run with a *FatalError;
// all other outcomes go to the Observer supplied at construction and the run
// continues. A run ends Completed or Aborted, as recorded in its Summary.
package batch
