// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
)

// Outcome classifies the result of one diff pair.
type Outcome int

const (
	// NoNewVersion means the new snapshot file is missing. Fatal.
	NoNewVersion Outcome = iota + 1
	// InternalError means the diff tool failed. Fatal.
	InternalError
	// NoOldVersion means this old snapshot has no file for the region.
	NoOldVersion
	// NothingToDo means the diff already exists.
	NothingToDo
	// Ok means the diff was computed and is smaller than the new file.
	Ok
	// TooLarge means the diff was computed but is bigger than the new file.
	TooLarge
)

var outcomeNames = map[Outcome]string{
	NoNewVersion:  "NoNewVersion",
	InternalError: "InternalError",
	NoOldVersion:  "NoOldVersion",
	NothingToDo:   "NothingToDo",
	Ok:            "Ok",
	TooLarge:      "TooLarge",
}

// Outcomes lists every outcome in declaration order.
func Outcomes() []Outcome {
	return []Outcome{NoNewVersion, InternalError, NoOldVersion, NothingToDo, Ok, TooLarge}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for o, name := range outcomeNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// IsFatal reports whether the outcome must abort the whole batch.
func (o Outcome) IsFatal() bool {
	return o == NoNewVersion || o == InternalError
}

// Format renders the log message for a result with this outcome. Only the
// fields known for the outcome are referenced: sizes appear in Ok and TooLarge
// messages only.
func (o Outcome) Format(r PairResult) string {
	switch o {
	case NoNewVersion:
		return fmt.Sprintf("Failed: new version doesn't exist: %s", r.New)
	case InternalError:
		return fmt.Sprintf("Failed: internal error (C++ module) while calculating %s", r.Out)
	case NoOldVersion:
		return fmt.Sprintf("Skipped: old version doesn't exist: %s", r.Old)
	case NothingToDo:
		return fmt.Sprintf("Skipped: output already exists: %s", r.Out)
	case Ok:
		return fmt.Sprintf("Succeeded: calculated %s: %d out of %d bytes", r.Out, r.DiffSize, r.NewSize)
	case TooLarge:
		return fmt.Sprintf("Cancelled: %s: diff %d > new version %d", r.Out, r.DiffSize, r.NewSize)
	}
	return fmt.Sprintf("%s: %s", o, r.Out)
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if _, ok := outcomeNames[o]; !ok {
		return nil, fmt.Errorf("invalid outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	v, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
