package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/operation"
	"github.com/refx-sh/refx/pkg/status"

	// Register the github provider
	_ "github.com/refx-sh/refx/pkg/provider/github"
)

// NewSyncCmd creates a new sync command pulling configured expression
// libraries into the local collection.
func NewSyncCmd(o *opts.RootOpts) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync shared expression libraries into the collection",
		Long: `Sync downloads the expression libraries configured under "libraries" and
merges their expressions and groups into the local collection. Local
entries with the same name are replaced in place; everything else is
untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(o.Config.Libraries) == 0 {
				o.Logger.Warning("no libraries configured, nothing to sync")
				return nil
			}

			statusMgr := status.NewManager()
			userLogger := status.NewUserLogger(ctx)

			op, err := operation.New(operation.Options{
				Config:     o.Config,
				Store:      o.Store,
				StatusMgr:  statusMgr,
				UserLogger: userLogger,
			})
			if err != nil {
				return err
			}

			syncErr := op.Sync(ctx)
			userLogger.LogSummary(statusMgr, syncErr)
			if syncErr != nil {
				return syncErr
			}

			if details {
				entries := statusMgr.Entries()
				for _, entry := range entries {
					fmt.Println(status.FormatEntry(entry))
				}
				fmt.Println(status.FormatProgress(len(entries), len(entries)))
			}

			persistConfig(ctx, o)
			return nil
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "print a per-entry breakdown after syncing")

	return cmd
}
