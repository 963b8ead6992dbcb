// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/mwmdiff/mwmdiff/internal/batch"
	"github.com/mwmdiff/mwmdiff/internal/differ"
)

var summaryColumns = []string{"OLD", "OUTCOME", "DIFF", "NEW", "RATIO"}

// WriteSummary renders s to w in format f.
func WriteSummary(w io.Writer, s *batch.Summary, f Format, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch f {
	case JSON:
		return writeJSON(w, s)
	case YAML:
		return writeYAML(w, s)
	}

	rows := make([][]string, 0, len(s.Records))
	for _, r := range s.Records {
		rows = append(rows, []string{
			r.OldVersion(),
			r.Outcome.String(),
			size(r.PairResult, r.DiffSize),
			size(r.PairResult, r.NewSize),
			ratio(r.PairResult),
		})
	}

	TableWriter(Table{
		Header:  summaryHeader(s),
		Footer:  summaryFooter(s),
		Columns: summaryColumns,
		Rows:    rows,
	}, opts, w)
	return nil
}

func summaryHeader(s *batch.Summary) string {
	return fmt.Sprintf("%s %s: %d of %d pairs in %s (run %s)",
		s.Region, s.State, s.Attempted, s.Depth, s.Duration().Round(time.Millisecond), s.RunID)
}

func summaryFooter(s *batch.Summary) string {
	n := s.Count(differ.Ok)
	if n == 0 {
		return "no new diffs"
	}
	diff, nw := s.Produced()
	pct := 0.0
	if nw > 0 {
		pct = float64(diff) / float64(nw) * 100 //nolint:mnd
	}
	return fmt.Sprintf("%d new %s: %s for %s of map data (%.1f%%)",
		n, plural(n, "diff", "diffs"),
		humanize.Bytes(uint64(diff)), humanize.Bytes(uint64(nw)), pct)
}

func size(r differ.PairResult, n int64) string {
	if !r.Sized {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}

func ratio(r differ.PairResult) string {
	if !r.Sized || r.NewSize == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", r.Ratio()*100) //nolint:mnd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml output: %w", err)
	}
	_, err = w.Write(b)
	return err
}
