package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/engine"
	"github.com/refx-sh/refx/pkg/preview"
)

// NewPreviewCmd creates a new preview command. It never mutates the buffer:
// it prints highlight ranges and the capped match list the dialog would show.
func NewPreviewCmd(o *opts.RootOpts) *cobra.Command {
	var (
		find      string
		selection string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview matches without changing the buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			set := o.Settings()
			if cmd.Flags().Changed("selection-only") {
				set.SelectionOnly, _ = cmd.Flags().GetBool("selection-only")
			}
			if cmd.Flags().Changed("ignore-case") {
				set.CaseInsensitive, _ = cmd.Flags().GetBool("ignore-case")
			}

			if find == "" {
				find = o.Config.Settings.FindText
			}

			buf, err := openBuffer(o)
			if err != nil {
				return err
			}
			if err := applySelection(buf, selection); err != nil {
				return err
			}

			scope := engine.ReadScope(buf, set.SelectionOnly)
			flags := engine.AssembleFlags(set.CaseInsensitive)

			svc := preview.NewService()
			result := svc.Preview(scope.Text, find, flags, scope.Base)
			svc.Apply(buf, result)

			if result.Invalid {
				o.Logger.Warning("empty or invalid pattern, nothing to preview")
				return nil
			}

			o.Logger.Infof("%d match(es) in %s", len(result.Ranges), scopeName(set))
			for _, item := range result.Items {
				pos := buf.OffsetToPosition(item.Range.From)
				fmt.Printf("  %d:%d\t%q\n", pos.Line+1, pos.Column+1, item.Text)
			}
			if result.Truncated {
				o.Logger.Infof("list capped, %d more match(es) not shown", result.Omitted)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&find, "find", "", "pattern to preview")
	cmd.Flags().StringVar(&selection, "select", "", "selection byte range start:end")
	cmd.Flags().Bool("selection-only", false, "preview in the selection instead of the document")
	cmd.Flags().Bool("ignore-case", false, "case-insensitive matching")

	return cmd
}
