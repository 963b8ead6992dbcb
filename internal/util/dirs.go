// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AbsDir turns a directory argument into a clean absolute path. Trailing
// separators are dropped. The directory does not have to exist.
func AbsDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", os.ErrInvalid
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// ExistingDir is AbsDir plus a check that the path exists and is a
// directory. Symlinks are followed.
func ExistingDir(dir string) (string, error) {
	abs, err := AbsDir(dir)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, os.ErrInvalid)
	}
	return abs, nil
}

// SamePath reports whether a and b name the same location once made absolute
// and, where they exist, symlink-resolved.
func SamePath(a, b string) bool {
	return canonical(a) == canonical(b)
}

func canonical(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}
