// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"github.com/apex/log"

	"github.com/mwmdiff/mwmdiff/internal/batch"
)

// NewObserver returns a batch.Observer that forwards outcome messages to the
// Apex logger, tagged with the region and run id of the batch it serves.
func NewObserver(region, runID string) batch.Observer {
	entry := log.WithFields(log.Fields{
		"region": region,
		"run":    runID,
	})
	return batch.ObserverFunc(func(level log.Level, message string) {
		switch level {
		case log.DebugLevel:
			entry.Debug(message)
		case log.WarnLevel:
			entry.Warn(message)
		case log.ErrorLevel, log.FatalLevel:
			entry.Error(message)
		default:
			entry.Info(message)
		}
	})
}
