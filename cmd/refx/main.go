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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/refx-sh/refx/cmd/refx/commands"
	"github.com/refx-sh/refx/cmd/refx/opts"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Shared options, populated once flags are parsed
	rootOpts := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "refx",
		Short: "Regex find/replace with saved expressions and live preview",
		Long: `refx applies regex (or literal) find/replace expressions to a text buffer,
with saved named expressions, sequential batches, groups, match preview,
and expression libraries synced from remote repositories.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			o, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*rootOpts = *o
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewPreviewCmd(rootOpts),
		commands.NewSaveCmd(rootOpts),
		commands.NewRunCmd(rootOpts),
		commands.NewBatchCmd(rootOpts),
		commands.NewGroupCmd(rootOpts),
		commands.NewListCmd(rootOpts),
		commands.NewDeleteCmd(rootOpts),
		commands.NewSyncCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
