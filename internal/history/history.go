// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwmdiff/mwmdiff/internal/batch"
	"github.com/mwmdiff/mwmdiff/internal/config"
	"github.com/mwmdiff/mwmdiff/internal/log"
	"github.com/mwmdiff/mwmdiff/internal/util"
)

// ErrNoHistory is returned by Load when nothing was recorded for the inputs.
var ErrNoHistory = errors.New("no recorded run")

// Entry is a summary as stored on disk.
type Entry struct {
	Key     string         `json:"key"`
	Path    string         `json:"-"`
	Saved   time.Time      `json:"saved"`
	Summary *batch.Summary `json:"summary"`
}

// Dir resolves the base history directory.
// Precedence:
//  1. MWMDIFF_HISTORY_DIR, if set and non-empty
//  2. os.UserCacheDir()/mwmdiff/history
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("MWMDIFF_HISTORY_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "mwmdiff", "history"), true
	}
	return "", false
}

// Enabled returns true unless MWMDIFF_HISTORY explicitly disables it
// ("0"/"false") or the config file sets history.enabled to false.
func Enabled() bool {
	if v, _ := os.LookupEnv("MWMDIFF_HISTORY"); v == "0" || v == "false" {
		return false
	}
	enabled, err := config.GetBool("history.enabled", true)
	if err != nil {
		log.Debugf("ignoring history.enabled: %v", err)
		return true
	}
	return enabled
}

// EnsureBaseDir creates the base directory if history is enabled and a base
// path can be resolved. Returns the path, whether it is usable, and an error
// if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create history directory: %w", err)
	}
	return base, true, nil
}

// Key identifies the inputs of a run: the region and the absolute new
// snapshot directory.
func Key(region, newDir string) string {
	if abs, err := util.AbsDir(newDir); err == nil {
		newDir = abs
	}
	h := sha256.New()
	h.Write([]byte(region + "\x00" + newDir))
	return hex.EncodeToString(h.Sum(nil))
}

// EntryPath returns where the entry for region and newDir lives.
func EntryPath(region, newDir string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	return filepath.Join(base, Key(region, newDir)+".json"), true
}

// Save records s as the latest run for its region and newDir, replacing any
// earlier entry. It is a no-op when history is disabled.
func Save(s *batch.Summary, newDir string) error {
	if !Enabled() || s == nil {
		return nil
	}
	p, ok := EntryPath(s.Region, newDir)
	if !ok {
		return nil
	}

	b, err := json.MarshalIndent(Entry{Key: Key(s.Region, newDir), Saved: time.Now(), Summary: s}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}
	if _, _, err := EnsureBaseDir(); err != nil {
		return err
	}
	if err := os.WriteFile(p, b, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	log.Debugf("history write: region=%s run=%s path=%s", s.Region, s.RunID, p)
	return nil
}

// Load returns the latest recorded run for region and newDir.
func Load(region, newDir string) (*Entry, error) {
	p, ok := EntryPath(region, newDir)
	if !ok {
		return nil, ErrNoHistory
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w for %s in %s", ErrNoHistory, region, newDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history entry: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("failed to decode history entry %s: %w", p, err)
	}
	e.Path = p
	return &e, nil
}

// Purge removes entries older than the provided number of days. Only files
// named like the entries Save writes are considered; anything else in the
// history dir is left alone. If days <= 0 or the history dir cannot be
// resolved, it is a no-op.
func Purge(days int) error {
	if days <= 0 {
		log.Debug("history purge disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	entries, err := os.ReadDir(base)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to purge history: %w", err)
	}

	maxAge := time.Duration(days) * 24 * time.Hour
	for _, de := range entries {
		if !de.Type().IsRegular() || !isEntryName(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil || time.Since(info.ModTime()) <= maxAge {
			continue
		}

		path := filepath.Join(base, de.Name())
		if err := os.Remove(path); err == nil {
			log.Debugf("removed history entry %s", path)
		} else {
			log.WithError(err).Warnf("failed to remove history entry %s", path)
		}
	}
	return nil
}

// isEntryName reports whether name is <Key>.json.
func isEntryName(name string) bool {
	key, ok := strings.CutSuffix(name, ".json")
	if !ok || len(key) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}
