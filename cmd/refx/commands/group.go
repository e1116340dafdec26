package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/log"
)

// NewGroupCmd creates a new group command. A group is a saved ordered list of
// expression names; items are resolved against the live collection at run
// time and dangling names are dropped silently.
func NewGroupCmd(o *opts.RootOpts) *cobra.Command {
	var (
		query     string
		selection string
	)

	cmd := &cobra.Command{
		Use:   "group [name]",
		Short: "Run a saved group on the buffer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var name string
			if len(args) > 0 {
				name = args[0]
			} else {
				candidates := o.Store.FilterGroups(query)
				if len(candidates) == 0 {
					o.Logger.Warning("no saved groups to run")
					return nil
				}
				names := make([]string, len(candidates))
				for i, g := range candidates {
					names[i] = g.Name
				}
				picked, err := pterm.DefaultInteractiveSelect.
					WithOptions(names).
					Show("Select group")
				if err != nil {
					return errors.Errorf("selecting group: %w", err)
				}
				name = picked
			}

			group, ok := o.Store.FindGroup(name)
			if !ok {
				o.Logger.Warningf("no group named %q", name)
				return nil
			}

			buf, err := openBuffer(o)
			if err != nil {
				return err
			}
			if err := applySelection(buf, selection); err != nil {
				return err
			}

			set := o.Settings()
			if cmd.Flags().Changed("selection-only") {
				set.SelectionOnly, _ = cmd.Flags().GetBool("selection-only")
			}

			o.Logger.StartRunOperation(ctx, log.RunOperation{
				Action: "group",
				Buffer: buf.ID(),
				Scope:  scopeName(set),
			})
			res, err := o.Engine.RunGroup(ctx, buf, group, set)
			o.Logger.LogApplyOperation(ctx, log.ApplyOperation{
				Expression: group.Name,
				Scope:      scopeName(set),
				Count:      res.Count,
				Changed:    res.Changed,
				Invalid:    err != nil,
			})
			o.Logger.EndRunOperation(ctx)

			if outErr := reportOutcome(o, res, err, scopeName(set)); outErr != nil {
				return outErr
			}
			if err != nil {
				return nil
			}

			if res.Changed || stdinBuffer(o) {
				return flushBuffer(o, buf)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "narrow the interactive list by name substring")
	cmd.Flags().StringVar(&selection, "select", "", "selection byte range start:end")
	cmd.Flags().Bool("selection-only", false, "operate on the selection instead of the document")

	return cmd
}
