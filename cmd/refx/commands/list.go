package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/refx-sh/refx/cmd/refx/opts"
)

// NewListCmd creates a new list command showing the saved collection in
// stored order.
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved expressions and groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			exprs := o.Store.FilterExpressions(query)
			groups := o.Store.FilterGroups(query)

			if len(exprs) == 0 && len(groups) == 0 {
				o.Logger.Info("nothing saved yet")
				return nil
			}

			nameColor := color.New(color.FgCyan)
			patternColor := color.New(color.Faint)

			if len(exprs) > 0 {
				o.Logger.Header(fmt.Sprintf("Expressions (%d)", len(exprs)))
				for _, e := range exprs {
					fmt.Printf("  %s  %s %s\n",
						nameColor.Sprintf("%-20s", e.Name),
						patternColor.Sprintf("/%s/%s", e.Pattern, e.Flags),
						patternColor.Sprintf("-> %q", e.Replace))
				}
			}

			if len(groups) > 0 {
				o.Logger.Header(fmt.Sprintf("Groups (%d)", len(groups)))
				for _, g := range groups {
					fmt.Printf("  %s  %s\n",
						nameColor.Sprintf("%-20s", g.Name),
						patternColor.Sprint(strings.Join(g.Items, " > ")))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "filter by name substring")

	return cmd
}
