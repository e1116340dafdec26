package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/log"
	"github.com/refx-sh/refx/pkg/store"
)

// NewBatchCmd creates a new batch command: an ordered list of saved
// expressions applied sequentially, each against the output of the previous.
func NewBatchCmd(o *opts.RootOpts) *cobra.Command {
	var (
		query     string
		selection string
	)

	cmd := &cobra.Command{
		Use:   "batch [name...]",
		Short: "Run saved expressions in sequence on the buffer",
		Long: `Batch applies the named expressions strictly in argument order, each one
against the output of the previous. With no names, the expressions are
picked interactively; the picked set runs in collection order. A compile
failure for any member aborts the whole batch and the buffer is not
written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var exprs []store.Expression
			if len(args) > 0 {
				for _, name := range args {
					expr, ok := o.Store.FindExpression(name)
					if !ok {
						o.Logger.Warningf("no expression named %q", name)
						return nil
					}
					exprs = append(exprs, expr)
				}
			} else {
				candidates := o.Store.FilterExpressions(query)
				if len(candidates) == 0 {
					o.Logger.Warning("no saved expressions to run")
					return nil
				}
				names := make([]string, len(candidates))
				byName := make(map[string]store.Expression, len(candidates))
				for i, e := range candidates {
					names[i] = e.Name
					byName[e.Name] = e
				}
				picked, err := pterm.DefaultInteractiveMultiselect.
					WithOptions(names).
					Show("Select expressions")
				if err != nil {
					return errors.Errorf("selecting expressions: %w", err)
				}
				for _, name := range picked {
					exprs = append(exprs, byName[name])
				}
			}

			if len(exprs) == 0 {
				o.Logger.Warning("nothing selected")
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
				Action: "batch",
				Buffer: buf.ID(),
				Scope:  scopeName(set),
			})
			res, err := o.Engine.RunBatch(ctx, buf, exprs, set)
			for _, expr := range exprs {
				o.Logger.LogApplyOperation(ctx, log.ApplyOperation{
					Expression: expr.Name,
					Pattern:    expr.Pattern,
					Scope:      scopeName(set),
					Invalid:    err != nil,
				})
			}
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
