package commands

import (
	"github.com/spf13/cobra"

	"github.com/refx-sh/refx/cmd/refx/opts"
)

// NewDeleteCmd creates a new delete command. Deleting an expression does not
// cascade: groups keep the name and drop it at run time if it stays dangling.
func NewDeleteCmd(o *opts.RootOpts) *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved expression or group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			if group {
				if !o.Store.DeleteGroup(name) {
					o.Logger.Warningf("no group named %q", name)
					return nil
				}
				persistConfig(ctx, o)
				o.Logger.Successf("deleted group %q", name)
				return nil
			}

			if !o.Store.DeleteExpression(name) {
				o.Logger.Warningf("no expression named %q", name)
				return nil
			}
			persistConfig(ctx, o)
			o.Logger.Successf("deleted expression %q", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "delete a group instead of an expression")

	return cmd
}
