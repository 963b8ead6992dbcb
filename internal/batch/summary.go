// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"fmt"
	"time"

	"github.com/mwmdiff/mwmdiff/internal/differ"
)

// State is the terminal state of a batch.
type State int

const (
	// Completed means every requested pair ran without a fatal outcome.
	Completed State = iota + 1
	// Aborted means the batch stopped early.
	Aborted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Completed:
		return "Completed"
	case Aborted:
		return "Aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if s != Completed && s != Aborted {
		return nil, fmt.Errorf("invalid state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Completed":
		*s = Completed
	case "Aborted":
		*s = Aborted
	default:
		return fmt.Errorf("unknown state %q", string(b))
	}
	return nil
}

// Record is one attempted pair.
type Record struct {
	Outcome           differ.Outcome `json:"outcome" yaml:"outcome"`
	Message           string         `json:"message" yaml:"message"`
	differ.PairResult `yaml:",inline"`
}

// Summary describes a finished (or aborted) batch.
type Summary struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Region    string    `json:"region" yaml:"region"`
	NewDir    string    `json:"new_dir" yaml:"new_dir"`
	Depth     int       `json:"depth" yaml:"depth"`
	State     State     `json:"state" yaml:"state"`
	Attempted int       `json:"attempted" yaml:"attempted"`
	Records   []Record  `json:"records" yaml:"records"`
	Started   time.Time `json:"started" yaml:"started"`
	Finished  time.Time `json:"finished" yaml:"finished"`
}

// Count returns how many records have outcome o.
func (s *Summary) Count(o differ.Outcome) int {
	n := 0
	for _, r := range s.Records {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Reported is the number of records handed to the observer, i.e. the
// non-fatal ones.
func (s *Summary) Reported() int {
	n := 0
	for _, r := range s.Records {
		if !r.Outcome.IsFatal() {
			n++
		}
	}
	return n
}

// Fatal returns the record that aborted the batch, if any.
func (s *Summary) Fatal() (Record, bool) {
	if n := len(s.Records); n > 0 && s.Records[n-1].Outcome.IsFatal() {
		return s.Records[n-1], true
	}
	return Record{}, false
}

// Produced sums diff and new-file sizes over the diffs computed in this run
// that are usable (Ok outcomes).
func (s *Summary) Produced() (diffBytes, newBytes int64) {
	for _, r := range s.Records {
		if r.Outcome == differ.Ok {
			diffBytes += r.DiffSize
			newBytes += r.NewSize
		}
	}
	return diffBytes, newBytes
}

// Duration is Finished-Started.
func (s *Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}
