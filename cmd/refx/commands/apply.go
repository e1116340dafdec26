package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/engine"
	"github.com/refx-sh/refx/pkg/store"
)

// NewApplyCmd creates a new apply command. It is the CLI analog of the
// find/replace dialog submit: one pattern, one replacement, one scope.
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var (
		find      string
		replace   string
		selection string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a find/replace to the buffer",
		Long: `Apply runs a single find/replace pass over the buffer.
The pattern is a regex unless regex mode is toggled off, in which case it is
a literal substring. With no --find, the last-used pattern from the config
is applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			set := o.Settings()
			if cmd.Flags().Changed("regex") {
				set.UseRegex, _ = cmd.Flags().GetBool("regex")
			}
			if cmd.Flags().Changed("selection-only") {
				set.SelectionOnly, _ = cmd.Flags().GetBool("selection-only")
			}
			if cmd.Flags().Changed("ignore-case") {
				set.CaseInsensitive, _ = cmd.Flags().GetBool("ignore-case")
			}
			if cmd.Flags().Changed("expand-newline") {
				set.ExpandLineBreak, _ = cmd.Flags().GetBool("expand-newline")
			}
			if cmd.Flags().Changed("expand-tab") {
				set.ExpandTab, _ = cmd.Flags().GetBool("expand-tab")
			}

			buf, err := openBuffer(o)
			if err != nil {
				return err
			}
			if err := applySelection(buf, selection); err != nil {
				return err
			}

			// Fall back to the selection text when prefill is on, then to
			// the last-used texts. A selection with embedded line breaks
			// never prefills.
			if find == "" && o.Config.Settings.PrefillFromSelection {
				if sel := buf.SelectionText(); !strings.Contains(sel, "\n") {
					find = sel
				}
			}
			if find == "" {
				find = o.Config.Settings.FindText
			}
			if !cmd.Flags().Changed("replace") {
				replace = o.Config.Settings.ReplaceText
			}

			// Empty pattern is rejected before compilation, no mutation
			if find == "" {
				return reportOutcome(o, engine.Result{}, errors.Errorf("submitting find/replace: %w", engine.ErrEmptyPattern), scopeName(set))
			}

			expr := store.Expression{
				Name:    "<dialog>",
				Pattern: find,
				Flags:   engine.AssembleFlags(set.CaseInsensitive),
				Replace: replace,
			}

			res, err := o.Engine.RunExpression(ctx, buf, expr, set)
			if outErr := reportOutcome(o, res, err, scopeName(set)); outErr != nil {
				return outErr
			}
			if err != nil {
				return nil
			}

			// Stdin buffers always pass through so pipelines keep their data
			if res.Changed || stdinBuffer(o) {
				if err := flushBuffer(o, buf); err != nil {
					return err
				}
			}

			// Persist last-used texts and toggles after a successful run
			o.Config.Settings.FindText = find
			o.Config.Settings.ReplaceText = replace
			o.Config.Settings.UseRegex = set.UseRegex
			o.Config.Settings.SelectionOnly = set.SelectionOnly
			o.Config.Settings.CaseInsensitive = set.CaseInsensitive
			o.Config.Settings.ExpandLineBreak = set.ExpandLineBreak
			o.Config.Settings.ExpandTab = set.ExpandTab
			persistConfig(ctx, o)

			return nil
		},
	}

	cmd.Flags().StringVar(&find, "find", "", "pattern to find")
	cmd.Flags().StringVar(&replace, "replace", "", "replacement template")
	cmd.Flags().StringVar(&selection, "select", "", "selection byte range start:end")
	cmd.Flags().Bool("regex", true, "treat the pattern as a regex")
	cmd.Flags().Bool("selection-only", false, "operate on the selection instead of the document")
	cmd.Flags().Bool("ignore-case", false, "case-insensitive matching")
	cmd.Flags().Bool("expand-newline", false, `expand literal \n in the replacement`)
	cmd.Flags().Bool("expand-tab", false, `expand literal \t in the replacement`)

	return cmd
}
