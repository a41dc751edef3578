package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the product catalog",
	}
	cmd.AddCommand(
		newCatalogCategoriesCmd(app),
		newCatalogListCmd(app),
		newCatalogShowCmd(app),
	)
	return cmd
}

func newCatalogCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Println(category)
			}
			return nil
		},
	}
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <category>",
		Short: "List products in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.catalog.ProductsByCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRICE\tTITLE")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t$%.2f\t%s\n", p.ID, p.Price, p.Title)
			}
			return w.Flush()
		},
	}
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			p, err := app.catalog.ProductByID(cmd.Context(), productID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n$%.2f  [%s]\n\n%s\n", p.Title, p.Price, p.Category, p.Description)
			return nil
		},
	}
}
