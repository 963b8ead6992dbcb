// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/mwmdiff/mwmdiff/internal/util"
)

// ErrNotVersion is returned by ParseVersion for names that are not version
// tokens.
var ErrNotVersion = errors.New("not a version token")

// Version is a snapshot directory name such as "220315". Versions order
// lexicographically, so a later snapshot compares greater.
type Version string

// ParseVersion validates a directory name as a version token: non-empty,
// starting with a decimal digit and free of path separators.
func ParseVersion(name string) (Version, error) {
	switch {
	case name == "", name == ".", name == "..":
		return "", fmt.Errorf("%q: %w", name, ErrNotVersion)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("%q contains a path separator: %w", name, ErrNotVersion)
	case name[0] < '0' || name[0] > '9':
		return "", fmt.Errorf("%q does not start with a digit: %w", name, ErrNotVersion)
	}
	return Version(name), nil
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return string(v)
}

// Snapshot is one published snapshot directory.
type Snapshot struct {
	Version Version
	Dir     string
}

// Catalog enumerates the old snapshots under Root that a new snapshot can be
// diffed against.
type Catalog struct {
	Root   string
	NewDir string
}

// New returns a Catalog over root that excludes newDir.
func New(root, newDir string) *Catalog {
	return &Catalog{Root: root, NewDir: newDir}
}

// Versions yields candidate snapshots newest first. Every call rescans Root,
// so the sequence reflects the disk at the time it is ranged over. A scan
// failure is yielded once as an error and ends the sequence.
func (c *Catalog) Versions() iter.Seq2[Snapshot, error] {
	return func(yield func(Snapshot, error) bool) {
		snapshots, err := c.scan()
		if err != nil {
			yield(Snapshot{}, err)
			return
		}
		for _, s := range snapshots {
			if !yield(s, nil) {
				return
			}
		}
	}
}

// List materializes Versions.
func (c *Catalog) List() ([]Snapshot, error) {
	var out []Snapshot
	for s, err := range c.Versions() {
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Catalog) scan() ([]Snapshot, error) {
	entries, err := os.ReadDir(c.Root)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("catalog: old version root %s does not exist", c.Root)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read old version root %s: %w", c.Root, err)
	}

	var snapshots []Snapshot
	for _, e := range entries {
		v, err := ParseVersion(e.Name())
		if err != nil {
			log.Debugf("catalog: skipping %s: %v", filepath.Join(c.Root, e.Name()), err)
			continue
		}

		dir := filepath.Join(c.Root, e.Name())

		// Stat rather than e.IsDir() so symlinked snapshot dirs count.
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			continue
		}
		if c.NewDir != "" && util.SamePath(dir, c.NewDir) {
			continue
		}

		snapshots = append(snapshots, Snapshot{Version: v, Dir: dir})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Version > snapshots[j].Version
	})
	return snapshots, nil
}
