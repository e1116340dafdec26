// Copyright 2025 refx authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/config"
	"github.com/refx-sh/refx/pkg/engine"
	"github.com/refx-sh/refx/pkg/log"
	"github.com/refx-sh/refx/pkg/store"
)

var (
	// Flags
	configFile string
	bufferFile string
	debug      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	// Status output goes to stderr; stdout may carry the transformed buffer
	userLogger := log.New(os.Stderr, zerolog.InfoLevel)

	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	// Create store from persisted collections
	st := store.New(cfg.Expressions, cfg.Groups)

	// Create engine
	eng, err := engine.New(engine.Options{Store: st})
	if err != nil {
		return nil, errors.Errorf("creating engine: %w", err)
	}

	return &opts.RootOpts{
		Config:     cfg,
		ConfigPath: configFile,
		Store:      st,
		Engine:     eng,
		Logger:     userLogger,
		BufferPath: bufferFile,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".refxrc.yaml", "config file path")
	cmd.PersistentFlags().StringVarP(&bufferFile, "file", "f", "-", "buffer file path, - for stdin/stdout")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
