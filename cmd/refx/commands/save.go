package commands

import (
	"github.com/spf13/cobra"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/engine"
	"github.com/refx-sh/refx/pkg/store"
)

// NewSaveCmd creates a new save command. Saving by an existing name replaces
// the stored entry in place, preserving its position.
func NewSaveCmd(o *opts.RootOpts) *cobra.Command {
	var (
		find    string
		replace string
		items   []string
	)

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the current expression, or a group, under a name",
		Long: `Save stores the current find/replace as a named expression. With --items,
it instead stores a group: an ordered list of expression names applied
sequentially as one action. Group items are references by name; they are
not checked against stored expressions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var name string
			if len(args) > 0 {
				name = args[0]
			}

			// Group save
			if len(items) > 0 {
				if err := o.Store.UpsertGroup(store.Group{Name: name, Items: items}); err != nil {
					return reportOutcome(o, engine.Result{}, err, "")
				}
				persistConfig(ctx, o)
				o.Logger.Successf("saved group %q with %d item(s)", name, len(items))
				return nil
			}

			// Expression save
			if find == "" {
				find = o.Config.Settings.FindText
			}
			if !cmd.Flags().Changed("replace") {
				replace = o.Config.Settings.ReplaceText
			}
			if find == "" {
				o.Logger.Warning("find pattern is empty")
				return nil
			}

			expr := store.Expression{
				Name:    name,
				Pattern: find,
				Flags:   engine.AssembleFlags(o.Config.Settings.CaseInsensitive),
				Replace: replace,
			}
			if err := o.Store.UpsertExpression(expr); err != nil {
				return reportOutcome(o, engine.Result{}, err, "")
			}

			persistConfig(ctx, o)
			o.Logger.Successf("saved expression %q", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&find, "find", "", "pattern to save")
	cmd.Flags().StringVar(&replace, "replace", "", "replacement template to save")
	cmd.Flags().StringSliceVar(&items, "items", nil, "expression names, in order, to save as a group")

	return cmd
}
