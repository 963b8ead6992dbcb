// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/mwmdiff/mwmdiff/internal/differ"
	"github.com/mwmdiff/mwmdiff/internal/planner"
)

// ErrInvalidDepth is returned by Run when Depth is not positive.
var ErrInvalidDepth = errors.New("depth must be greater than zero")

// Observer receives the message of every non-fatal outcome, in processing
// order.
type Observer interface {
	Report(level log.Level, message string)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(level log.Level, message string)

// Report implements Observer.
func (f ObserverFunc) Report(level log.Level, message string) {
	f(level, message)
}

// Executor computes one diff pair. *differ.Executor implements it.
type Executor interface {
	Execute(ctx context.Context, req differ.PairRequest) (differ.Outcome, differ.PairResult)
}

// FatalError aborts a batch. Its message is the formatted outcome message.
type FatalError struct {
	Outcome differ.Outcome
	Message string
	Result  differ.PairResult
}

// Error implements error.
func (e *FatalError) Error() string {
	return e.Message
}

// Driver runs one batch: the Depth most recent old snapshots diffed against
// the new snapshot, strictly in sequence.
type Driver struct {
	Executor Executor
	Observer Observer
	Depth    int

	// RunID labels the summary; generated when empty.
	RunID string
}

// Run plans and executes up to Depth pairs in catalog order. The first fatal
// outcome stops the batch and is returned as a *FatalError; every other
// outcome is reported to the Observer and processing continues. Planning
// errors and context cancellation also abort the batch. The returned Summary
// is never nil once Depth has been validated, even when err is not.
func (d *Driver) Run(ctx context.Context, p *planner.Planner, src planner.Source) (*Summary, error) {
	if d.Depth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, d.Depth)
	}

	runID := d.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	sum := &Summary{
		RunID:   runID,
		Region:  p.Region,
		NewDir:  p.NewDir,
		Depth:   d.Depth,
		State:   Completed,
		Started: time.Now(),
	}
	defer func() { sum.Finished = time.Now() }()

	log.Debugf("batch %s: region=%s depth=%d", runID, p.Region, d.Depth)

	for req, err := range p.Requests(ctx, src, d.Depth) {
		if err != nil {
			sum.State = Aborted
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return sum, err
			}
			return sum, fmt.Errorf("failed to plan diff pairs: %w", err)
		}

		sum.Attempted++
		outcome, res := d.Executor.Execute(ctx, req)
		rec := Record{
			Outcome:    outcome,
			Message:    outcome.Format(res),
			PairResult: res,
		}
		sum.Records = append(sum.Records, rec)

		if outcome.IsFatal() {
			sum.State = Aborted
			return sum, &FatalError{Outcome: outcome, Message: rec.Message, Result: res}
		}
		d.report(log.InfoLevel, rec.Message)
	}

	return sum, nil
}

func (d *Driver) report(level log.Level, message string) {
	if d.Observer != nil {
		d.Observer.Report(level, message)
	}
}
