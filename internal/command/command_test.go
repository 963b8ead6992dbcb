// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwmdiff/mwmdiff/internal/batch"
	"github.com/mwmdiff/mwmdiff/internal/config"
	"github.com/mwmdiff/mwmdiff/internal/differ"
	"github.com/mwmdiff/mwmdiff/internal/history"
	"github.com/mwmdiff/mwmdiff/internal/log"
)

// harness isolates config, history and logging for one test.
type harness struct {
	t    *testing.T
	root string
	out  bytes.Buffer
	logs bytes.Buffer
}

func newHarness(t *testing.T, versions ...string) *harness {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a POSIX shell")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MWMDIFF_HISTORY_DIR", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	unsetenv(t, "MWMDIFF_CFG_FILE", "MWMDIFF_HISTORY", "MWMDIFF_DEPTH", "MWMDIFF_TOOL",
		"MWMDIFF_METRICS_FILE", "MWMDIFF_LOG")
	config.Config = config.Type{}

	h := &harness{t: t, root: t.TempDir()}
	log.InitLoggerTo(&h.logs)
	t.Cleanup(func() { log.InitLoggerTo(os.Stdout) })

	for _, v := range versions {
		dir := filepath.Join(h.root, v)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Belarus.mwm"), make([]byte, 1000), 0o600))
	}
	return h
}

// unsetenv removes keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// tool writes a shell script standing in for the diff tool.
func (h *harness) tool(body string) string {
	h.t.Helper()
	p := filepath.Join(h.t.TempDir(), "fake_diff_tool")
	require.NoError(h.t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return p
}

// okTool writes a 100 byte diff.
func (h *harness) okTool() string {
	return h.tool(`head -c 100 /dev/zero > "$4"`)
}

func (h *harness) dir(v string) string {
	return filepath.Join(h.root, v)
}

func (h *harness) run(args ...string) error {
	h.t.Helper()
	args = append([]string{"mwmdiff"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(h.t, err)
	app.Writer = &h.out
	app.ErrWriter = &h.out
	return app.Run(context.Background(), args)
}

func TestMake_DepthOne(t *testing.T) {
	h := newHarness(t, "2020", "2021", "2022")

	err := h.run("make", "Belarus", h.dir("2022"), h.root, "--tool", h.okTool())

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.dir("2022"), "2021", "Belarus.mwmdiff"))
	assert.NoDirExists(t, filepath.Join(h.dir("2022"), "2020"))
	assert.Contains(t, h.logs.String(), "Succeeded: calculated "+filepath.Join(h.dir("2022"), "2021", "Belarus.mwmdiff")+": 100 out of 1000 bytes")
	assert.Equal(t, 1, strings.Count(h.logs.String(), " I "))
	assert.Empty(t, h.out.String(), "no summary without --output")
}

func TestMake_SecondRunIsNothingToDo(t *testing.T) {
	h := newHarness(t, "1", "2", "3")
	tool := h.okTool()

	require.NoError(t, h.run("make", "Belarus", h.dir("3"), h.root, "--tool", tool, "-d", "2"))
	h.logs.Reset()
	require.NoError(t, h.run("make", "Belarus", h.dir("3"), h.root, "--tool", "/nonexistent/tool", "-d", "2"))

	assert.Equal(t, 2, strings.Count(h.logs.String(), "Skipped: output already exists"))
}

func TestMake_FatalToolFailure(t *testing.T) {
	h := newHarness(t, "1", "2")
	tool := h.tool(`echo "cannot open section table" >&2
exit 1`)

	err := h.run("make", "Belarus", h.dir("2"), h.root, "--tool", tool)

	var fatal *batch.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, differ.InternalError, fatal.Outcome)
	assert.Equal(t, "Failed: internal error (C++ module) while calculating "+filepath.Join(h.dir("2"), "1", "Belarus.mwmdiff"), err.Error())
	assert.Contains(t, h.logs.String(), "cannot open section table")
}

func TestMake_MissingNewVersion(t *testing.T) {
	h := newHarness(t, "1")

	err := h.run("make", "Belarus", h.dir("2"), h.root, "--tool", h.okTool())

	var fatal *batch.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, differ.NoNewVersion, fatal.Outcome)
	assert.NotContains(t, h.logs.String(), " I ")
}

func TestMake_JSONSummaryHistoryAndMetrics(t *testing.T) {
	h := newHarness(t, "1", "2", "3")
	metricsFile := filepath.Join(t.TempDir(), "mwmdiff.prom")

	err := h.run("make", "Belarus", h.dir("3"), h.root,
		"--tool", h.okTool(), "--depth", "2", "-o", "json", "--metrics-file", metricsFile)
	require.NoError(t, err)

	var sum batch.Summary
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &sum))
	assert.Equal(t, batch.Completed, sum.State)
	assert.Equal(t, 2, sum.Count(differ.Ok))

	b, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `mwmdiff_pairs_total{outcome="Ok",region="Belarus"} 2`)

	e, err := history.Load("Belarus", h.dir("3"))
	require.NoError(t, err)
	assert.Equal(t, sum.RunID, e.Summary.RunID)

	h.out.Reset()
	require.NoError(t, h.run("report", "Belarus", h.dir("3")))
	assert.Contains(t, h.out.String(), "recorded ")
	assert.Contains(t, h.out.String(), "Belarus Completed: 2 of 2 pairs")
}

func TestMake_MissingOldRootIsAnEmptyBatch(t *testing.T) {
	h := newHarness(t, "2")
	runner := h.tool("exit 1")

	err := h.run("make", "Belarus", h.dir("2"), filepath.Join(h.root, "absent"),
		"--tool", runner, "-o", "json", "--no-history")
	require.NoError(t, err)

	var sum batch.Summary
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &sum))
	assert.Equal(t, batch.Completed, sum.State)
	assert.Zero(t, sum.Attempted)
	assert.Empty(t, sum.Records)
}

func TestMake_NoHistory(t *testing.T) {
	h := newHarness(t, "1", "2")

	require.NoError(t, h.run("make", "Belarus", h.dir("2"), h.root, "--tool", h.okTool(), "--no-history"))

	_, err := history.Load("Belarus", h.dir("2"))
	assert.ErrorIs(t, err, history.ErrNoHistory)
}

func TestMake_HistoryDisabledByConfig(t *testing.T) {
	h := newHarness(t, "1", "2")
	cfg := filepath.Join(t.TempDir(), "mwmdiff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("history:\n  enabled: false\n"), 0o600))
	t.Setenv("MWMDIFF_CFG_FILE", cfg)

	require.NoError(t, h.run("make", "Belarus", h.dir("2"), h.root, "--tool", h.okTool()))

	_, err := history.Load("Belarus", h.dir("2"))
	assert.ErrorIs(t, err, history.ErrNoHistory)
}

func TestMake_DepthFromEnvAndConfig(t *testing.T) {
	h := newHarness(t, "1", "2", "3", "4")
	tool := h.okTool()

	t.Setenv("MWMDIFF_DEPTH", "2")
	require.NoError(t, h.run("make", "Belarus", h.dir("4"), h.root, "--tool", tool, "--no-history"))
	assert.DirExists(t, filepath.Join(h.dir("4"), "2"))
	assert.NoDirExists(t, filepath.Join(h.dir("4"), "1"))

	unsetenv(t, "MWMDIFF_DEPTH")
	cfg := filepath.Join(t.TempDir(), "mwmdiff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("depth: 1\nmake:\n  depth: 3\n"), 0o600))
	t.Setenv("MWMDIFF_CFG_FILE", cfg)

	require.NoError(t, h.run("make", "Belarus", h.dir("4"), h.root, "--tool", tool, "--no-history"))
	assert.DirExists(t, filepath.Join(h.dir("4"), "1"))
}

func TestMake_Validation(t *testing.T) {
	h := newHarness(t, "1", "2")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing args", []string{"make", "Belarus", h.dir("2")}, "expected 3 arguments"},
		{"blank region", []string{"make", " ", h.dir("2"), h.root}, "region must not be blank"},
		{"empty region", []string{"make", "", h.dir("2"), h.root}, "region must not be blank"},
		{"blank new dir", []string{"make", "Belarus", " ", h.root}, "new_version_dir must not be blank"},
		{"blank after bool flag", []string{"make", "-t", " ", h.dir("2"), h.root}, "region must not be blank"},
		{"blank root after valued flag", []string{"make", "--depth", "2", "Belarus", h.dir("2"), " "}, "old_version_root must not be blank"},
		{"zero depth", []string{"make", "Belarus", h.dir("2"), h.root, "--depth", "0"}, "greater than zero"},
		{"bad output", []string{"make", "Belarus", h.dir("2"), h.root, "-o", "raw"}, "must be one of"},
		{"old root is a file", []string{"make", "Belarus", h.dir("2"), filepath.Join(h.dir("2"), "Belarus.mwm")}, "old_version_root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, h.run(tt.args...), tt.want)
		})
	}
}

func TestPlan(t *testing.T) {
	h := newHarness(t, "1", "2", "4")
	require.NoError(t, os.Mkdir(h.dir("3"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(h.dir("4"), "2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(h.dir("4"), "2", "Belarus.mwmdiff"), []byte("x"), 0o600))

	require.NoError(t, h.run("plan", "Belarus", h.dir("4"), h.root, "-d", "3", "-o", "json"))

	var got struct {
		Status string `json:"status"`
		Pairs  []struct {
			Version string `json:"version"`
			Status  string `json:"status"`
		} `json:"pairs"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, "present", got.Status)
	require.Len(t, got.Pairs, 3)
	assert.Equal(t, "3", got.Pairs[0].Version)
	assert.Equal(t, "NoOldVersion", got.Pairs[0].Status)
	assert.Equal(t, "NothingToDo", got.Pairs[1].Status)
	assert.Equal(t, "Pending", got.Pairs[2].Status)

	assert.NoDirExists(t, filepath.Join(h.dir("4"), "3"), "plan must not create directories")
}

func TestPlan_TextMissingNew(t *testing.T) {
	h := newHarness(t, "1")

	require.NoError(t, h.run("plan", "Belarus", h.dir("2"), h.root))

	assert.Contains(t, h.out.String(), "missing")
	assert.Contains(t, h.out.String(), "NoNewVersion")
	assert.NoDirExists(t, h.dir("2"))
}

func TestCheck(t *testing.T) {
	h := newHarness(t)
	tool := h.okTool()

	require.NoError(t, h.run("check", "--tool", tool))
	assert.Contains(t, h.out.String(), tool)

	err := h.run("check", "--tool", filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, differ.ErrToolNotFound)
}

func TestReport_NoHistory(t *testing.T) {
	h := newHarness(t)

	err := h.run("report", "Belarus", h.dir("1"))
	assert.ErrorIs(t, err, history.ErrNoHistory)
}

func TestInitApp_BadConfig(t *testing.T) {
	newHarness(t)
	t.Setenv("MWMDIFF_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := InitApp(context.Background(), []string{"mwmdiff", "make"})
	assert.ErrorContains(t, err, "failed to load config")
}
