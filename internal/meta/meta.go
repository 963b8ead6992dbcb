// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/mwmdiff/mwmdiff/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the starting working directory and the id
// that tags everything one invocation logs, records and exports.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
	RunID       string
}
