package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/log"
)

// NewRunCmd creates a new run command for a single saved expression.
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var (
		query     string
		selection string
	)

	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Run a saved expression on the buffer",
		Long: `Run applies one saved expression. With no name argument, the expression is
picked interactively from the saved collection, optionally narrowed by
--query (case-insensitive substring over names, collection order).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var name string
			if len(args) > 0 {
				name = args[0]
			} else {
				candidates := o.Store.FilterExpressions(query)
				if len(candidates) == 0 {
					o.Logger.Warning("no saved expressions to run")
					return nil
				}
				names := make([]string, len(candidates))
				for i, e := range candidates {
					names[i] = e.Name
				}
				picked, err := pterm.DefaultInteractiveSelect.
					WithOptions(names).
					Show("Select expression")
				if err != nil {
					return errors.Errorf("selecting expression: %w", err)
				}
				name = picked
			}

			expr, ok := o.Store.FindExpression(name)
			if !ok {
				o.Logger.Warningf("no expression named %q", name)
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
				Action: "apply",
				Buffer: buf.ID(),
				Scope:  scopeName(set),
			})
			res, err := o.Engine.RunExpression(ctx, buf, expr, set)
			o.Logger.LogApplyOperation(ctx, log.ApplyOperation{
				Expression: expr.Name,
				Pattern:    expr.Pattern,
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
