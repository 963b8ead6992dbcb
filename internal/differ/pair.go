// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "path/filepath"

// PairRequest names the three files of one diff computation.
type PairRequest struct {
	Region string `json:"region" yaml:"region"`
	New    string `json:"new" yaml:"new"`
	Old    string `json:"old" yaml:"old"`
	Out    string `json:"out" yaml:"out"`
}

// OldVersion is the name of the directory holding Out, which is the old
// snapshot's version token.
func (r PairRequest) OldVersion() string {
	return filepath.Base(filepath.Dir(r.Out))
}

// PairResult is a PairRequest plus what was learned while executing it.
// Sized is set once DiffSize and NewSize have been read from disk.
type PairResult struct {
	PairRequest `yaml:",inline"`

	DiffSize   int64  `json:"diff_size,omitempty" yaml:"diff_size,omitempty"`
	NewSize    int64  `json:"new_size,omitempty" yaml:"new_size,omitempty"`
	Sized      bool   `json:"sized" yaml:"sized"`
	ToolOutput string `json:"tool_output,omitempty" yaml:"tool_output,omitempty"`
}

// Ratio is DiffSize/NewSize, or 0 when the sizes are unknown.
func (r PairResult) Ratio() float64 {
	if !r.Sized || r.NewSize == 0 {
		return 0
	}
	return float64(r.DiffSize) / float64(r.NewSize)
}
