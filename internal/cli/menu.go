package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

func newMenuCmd() *cobra.Command {
	var (
		category string
		query    string
	)

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, ok := catalog.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			printMenu(cmd.OutOrStdout(), catalog.Default().Filter(cat, query))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category filter (All, Signature, Weekly Specials, Popular, Appetizers)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search name and description")
	return cmd
}

func printMenu(out io.Writer, items []catalog.Item) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No items found.")
		return
	}
	for _, it := range items {
		tag := ""
		if it.Tag != "" {
			tag = " [" + it.Tag + "]"
		}
		fmt.Fprintf(out, "%-24s %-40s Rs. %5d  %s%s\n", it.ID, it.Name, it.Price, it.Category, tag)
	}
}
