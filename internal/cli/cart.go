package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(
		newCartAddCmd(app),
		newCartDecreaseCmd(app),
		newCartRemoveCmd(app),
		newCartShowCmd(app),
		newCartClearCmd(app),
	)
	return cmd
}

func parseProductID(arg string) (int64, error) {
	productID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return productID, nil
}

func newCartAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			// цену и название берём из каталога: корзина хранит денормализованную позицию
			product, err := app.catalog.ProductByID(cmd.Context(), productID)
			if err != nil {
				return err
			}
			app.cart.AddItem(product)
			state := app.cart.Snapshot()
			fmt.Printf("added %q — %d items, $%.2f total\n", product.Title, state.TotalQuantity, state.TotalAmount)
			return nil
		},
	}
}

func newCartDecreaseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decrease <product-id>",
		Short: "Remove one unit of a product (never below one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			app.cart.DecreaseQuantity(productID)
			state := app.cart.Snapshot()
			fmt.Printf("%d items, $%.2f total\n", state.TotalQuantity, state.TotalAmount)
			return nil
		},
	}
}

func newCartRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			app.cart.RemoveItem(productID)
			state := app.cart.Snapshot()
			fmt.Printf("%d items, $%.2f total\n", state.TotalQuantity, state.TotalAmount)
			return nil
		},
	}
}

func newCartShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.cart.Snapshot()
			if state.TotalQuantity == 0 {
				fmt.Println("cart is empty")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tQTY\tPRICE\tTOTAL\tTITLE")
			for _, line := range state.Lines {
				fmt.Fprintf(w, "%d\t%d\t$%.2f\t$%.2f\t%s\n",
					line.ProductID, line.Quantity, line.UnitPrice, line.LineTotal, line.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d items, $%.2f total\n", state.TotalQuantity, state.TotalAmount)
			return nil
		},
	}
}

func newCartClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.cart.Clear()
			fmt.Println("cart cleared")
			return nil
		},
	}
}
