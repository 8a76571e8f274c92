package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/littlelemon/tablebook/internal/order"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Print the menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			menu := order.DefaultMenu()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, cat := range menu.Categories() {
				fmt.Fprintf(tw, "%s\n", cat)
				for _, it := range menu.InCategory(cat) {
					fmt.Fprintf(tw, "  %d\t%s\t%s\n", it.ID, it.Name, it.Price)
				}
			}
			return tw.Flush()
		},
	}
}
