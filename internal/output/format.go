// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format selects how results are rendered.
type Format string

const (
	// Text is a lipgloss table with a header and footer line.
	Text Format = "text"
	// JSON is indented encoding/json output.
	JSON Format = "json"
	// YAML is gopkg.in/yaml.v2 output.
	YAML Format = "yaml"
)

// Formats lists the accepted formats in help order.
func Formats() []Format {
	return []Format{Text, JSON, YAML}
}

// ParseFormat validates s. Matching is case-insensitive; empty means Text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Text, nil
	}
	f := Format(strings.ToLower(s))
	for _, ok := range Formats() {
		if f == ok {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Options tune text rendering.
type Options struct {
	Color   bool
	Titles  bool
	Padding int
}

// AutoColor reports whether f is a terminal and NO_COLOR is unset.
func AutoColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
