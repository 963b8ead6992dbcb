// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
)

// PlanRow is one previewed pair.
type PlanRow struct {
	Version string `json:"version" yaml:"version"`
	Old     string `json:"old" yaml:"old"`
	Out     string `json:"out" yaml:"out"`
	Status  string `json:"status" yaml:"status"`
}

// Plan is the preview of a batch.
type Plan struct {
	Region string    `json:"region" yaml:"region"`
	NewDir string    `json:"new_dir" yaml:"new_dir"`
	New    string    `json:"new" yaml:"new"`
	Status string    `json:"status" yaml:"status"`
	Pairs  []PlanRow `json:"pairs" yaml:"pairs"`
}

// WritePlan renders p to w in format f.
func WritePlan(w io.Writer, p Plan, f Format, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch f {
	case JSON:
		return writeJSON(w, p)
	case YAML:
		return writeYAML(w, p)
	}

	rows := make([][]string, 0, len(p.Pairs))
	for _, r := range p.Pairs {
		rows = append(rows, []string{r.Version, r.Status, r.Out})
	}

	footer := ""
	if len(p.Pairs) == 0 {
		footer = "no old versions"
	}

	TableWriter(Table{
		Header:  fmt.Sprintf("%s %s: %s", p.Region, p.New, p.Status),
		Footer:  footer,
		Columns: []string{"OLD", "STATUS", "OUT"},
		Rows:    rows,
	}, opts, w)
	return nil
}
