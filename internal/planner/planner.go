// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package planner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/mwmdiff/mwmdiff/internal/catalog"
	"github.com/mwmdiff/mwmdiff/internal/differ"
)

// Default file extensions for snapshot and diff files.
const (
	DefaultDataExt = "mwm"
	DefaultDiffExt = "mwmdiff"
)

// Source yields candidate old snapshots, newest first. *catalog.Catalog
// implements it.
type Source interface {
	Versions() iter.Seq2[catalog.Snapshot, error]
}

// Planner derives the file paths of each diff pair for one region and one new
// snapshot directory.
type Planner struct {
	Region  string
	NewDir  string
	DataExt string
	DiffExt string
}

// New returns a Planner with the default extensions.
func New(region, newDir string) *Planner {
	return &Planner{
		Region:  region,
		NewDir:  newDir,
		DataExt: DefaultDataExt,
		DiffExt: DefaultDiffExt,
	}
}

// Preview derives the request for an old snapshot without touching the disk:
//
//	new = <NewDir>/<region>.<data-ext>
//	old = <snapshot>/<region>.<data-ext>
//	out = <NewDir>/<old-version>/<region>.<diff-ext>
func (p *Planner) Preview(s catalog.Snapshot) differ.PairRequest {
	diff := p.Region + "." + orDefault(p.DiffExt, DefaultDiffExt)
	return differ.PairRequest{
		Region: p.Region,
		New:    p.NewFile(),
		Old:    filepath.Join(s.Dir, p.dataFile()),
		Out:    filepath.Join(p.NewDir, s.Version.String(), diff),
	}
}

// NewFile is the region's file in the new snapshot.
func (p *Planner) NewFile() string {
	return filepath.Join(p.NewDir, p.dataFile())
}

func (p *Planner) dataFile() string {
	return p.Region + "." + orDefault(p.DataExt, DefaultDataExt)
}

// Plan is Preview plus creation of the output directory. An existing
// directory is fine. When NewDir itself is missing nothing is created and the
// request is returned as is, leaving the executor to report the missing new
// snapshot.
func (p *Planner) Plan(s catalog.Snapshot) (differ.PairRequest, error) {
	req := p.Preview(s)
	dir := filepath.Dir(req.Out)

	err := os.Mkdir(dir, 0o755) //nolint:mnd
	switch {
	case err == nil:
		log.Debugf("planner: created %s", dir)
	case errors.Is(err, fs.ErrExist):
		if fi, statErr := os.Stat(dir); statErr != nil || !fi.IsDir() {
			return req, fmt.Errorf("diff directory %s exists but is not a directory", dir)
		}
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("planner: %s is missing, not creating %s", p.NewDir, dir)
	default:
		return req, fmt.Errorf("failed to create diff directory %s: %w", dir, err)
	}
	return req, nil
}

// Requests plans up to depth requests from src in its order. Requests are
// planned lazily, so output directories are only created for pairs the
// caller actually consumes. ctx is checked before each pair is planned. A
// source, planning or context error is yielded once and ends the sequence.
func (p *Planner) Requests(ctx context.Context, src Source, depth int) iter.Seq2[differ.PairRequest, error] {
	return func(yield func(differ.PairRequest, error) bool) {
		if depth <= 0 {
			return
		}
		n := 0
		for s, err := range src.Versions() {
			if err == nil {
				err = ctx.Err()
			}
			if err != nil {
				yield(differ.PairRequest{}, err)
				return
			}
			req, err := p.Plan(s)
			if !yield(req, err) || err != nil {
				return
			}
			n++
			if n == depth {
				return
			}
		}
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
