// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points MWMDIFF_CFG_FILE at a testdata file, resets the global
// Config and loads it before running fn.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testFile))
	require.NoError(t, err)
	t.Setenv("MWMDIFF_CFG_FILE", absPath)

	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.True(t, filepath.IsAbs(cfg.Source))
				assert.Equal(t, "/opt/omim/bin/mwm_diff_tool", cfg.Data["tool"])
				assert.Equal(t, 2, cfg.Data["depth"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absPath, err := filepath.Abs(filepath.Join("testdata", tt.testFile))
			require.NoError(t, err)
			t.Setenv("MWMDIFF_CFG_FILE", absPath)
			Config = Type{}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("MWMDIFF_CFG_FILE", "/nonexistent/path/mwmdiff.yaml")
	Config = Type{}

	_, err := Load()
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoad_Directory(t *testing.T) {
	t.Setenv("MWMDIFF_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.ErrorContains(t, err, "points to a directory")
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		namespace    string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "plain int", testFile: "simple.yaml", key: "depth", want: 2},
		{name: "namespace wins", testFile: "nested.yaml", namespace: "make", key: "depth", want: 3},
		{name: "namespace falls back to bare key", testFile: "nested.yaml", namespace: "plan", key: "depth", want: 1},
		{name: "nested key", testFile: "nested.yaml", key: "history.retention_days", want: 14},
		{name: "float truncated", testFile: "mixed-types.yaml", key: "ratio", want: 0},
		{name: "missing with default", testFile: "simple.yaml", key: "missing", defaultValue: []int{30}, want: 30},
		{name: "missing without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "not an int", testFile: "simple.yaml", key: "tool", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, tt.testFile, func(t *testing.T) {
				Config.Namespace = tt.namespace
				got, err := GetInt(tt.key, tt.defaultValue...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestGetString(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		got, err := GetString("tool")
		require.NoError(t, err)
		assert.Equal(t, "mwm_diff_tool", got)

		Config.Namespace = "make"
		got, err = GetString("output")
		require.NoError(t, err)
		assert.Equal(t, "json", got)

		got, err = GetString("missing", "text")
		require.NoError(t, err)
		assert.Equal(t, "text", got)

		_, err = GetString("depth")
		assert.ErrorContains(t, err, "not a string")
	})
}

func TestGetBool(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		got, err := GetBool("history.enabled", true)
		require.NoError(t, err)
		assert.False(t, got)

		got, err = GetBool("history.missing", true)
		require.NoError(t, err)
		assert.True(t, got)

		_, err = GetBool("tool")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "mixed-types.yaml", func(t *testing.T) {
		got, err := GetStringSlice("regions")
		require.NoError(t, err)
		assert.Equal(t, []string{"Belarus", "Germany_Berlin"}, got)

		_, err = GetStringSlice("bad_regions")
		assert.ErrorContains(t, err, "not a string")

		_, err = GetStringSlice("name")
		assert.ErrorContains(t, err, "not a slice")

		def := []string{"x"}
		got, err = GetStringSlice("does.not.exist", def)
		require.NoError(t, err)
		assert.Equal(t, def, got)
	})
}

func TestGet_TraverseNonMap(t *testing.T) {
	withConfig(t, "mixed-types.yaml", func(t *testing.T) {
		_, err := Config.get("name.something")
		assert.ErrorContains(t, err, "no valid path found")
	})
}
