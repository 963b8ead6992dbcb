// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
)

// DefaultTool is the external diff tool looked up on PATH.
const DefaultTool = "mwm_diff_tool"

// ErrToolNotFound is returned by LookupTool when the tool cannot be resolved.
var ErrToolNotFound = errors.New("diff tool not found")

// Runner runs an external program to completion and returns its combined
// stdout and stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct{}

// Run implements Runner. No timeout is applied beyond ctx.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// LookupTool resolves name on PATH (or as a path) and returns its location.
func LookupTool(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrToolNotFound, name, err)
	}
	return p, nil
}

// Executor computes one diff pair at a time.
type Executor struct {
	Tool   string
	Runner Runner
}

// NewExecutor returns an Executor that runs tool through os/exec. An empty
// tool means DefaultTool.
func NewExecutor(tool string) *Executor {
	return &Executor{Tool: tool, Runner: ExecRunner{}}
}

// Execute decides whether req needs work, runs the diff tool if it does and
// classifies the result. The checks run in a fixed order: new file, old file,
// existing output, tool run, size validation.
func (e *Executor) Execute(ctx context.Context, req PairRequest) (Outcome, PairResult) {
	res := PairResult{PairRequest: req}

	if !exists(req.New) {
		return NoNewVersion, res
	}
	if !exists(req.Old) {
		return NoOldVersion, res
	}

	// An existing diff was accepted by an earlier run; report its size but do
	// not validate it again.
	if exists(req.Out) {
		if err := measure(&res); err != nil {
			log.Debugf("differ: cannot size existing %s: %v", req.Out, err)
		}
		return NothingToDo, res
	}

	tool := e.tool()
	log.Debugf("differ: %s make %s %s %s", tool, req.Old, req.New, req.Out)
	out, err := e.runner().Run(ctx, tool, "make", req.Old, req.New, req.Out)
	res.ToolOutput = strings.TrimSpace(string(out))
	if err != nil {
		res.ToolOutput = joinOutput(res.ToolOutput, toolError(tool, err))
		return InternalError, res
	}

	if err := measure(&res); err != nil {
		res.ToolOutput = joinOutput(res.ToolOutput,
			fmt.Sprintf("%s exited 0 but the diff cannot be read: %v", tool, err))
		return InternalError, res
	}

	if res.DiffSize > res.NewSize {
		return TooLarge, res
	}
	return Ok, res
}

func (e *Executor) tool() string {
	if e.Tool == "" {
		return DefaultTool
	}
	return e.Tool
}

func (e *Executor) runner() Runner {
	if e.Runner == nil {
		return ExecRunner{}
	}
	return e.Runner
}

// measure fills DiffSize and NewSize from disk.
func measure(res *PairResult) error {
	out, err := os.Stat(res.Out)
	if err != nil {
		return err
	}
	nw, err := os.Stat(res.New)
	if err != nil {
		return err
	}
	res.DiffSize = out.Size()
	res.NewSize = nw.Size()
	res.Sized = true
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func toolError(tool string, err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("%s exited with status %d", tool, exitErr.ExitCode())
	}
	return fmt.Sprintf("%s could not be run: %v", tool, err)
}

func joinOutput(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
