package cli

import (
	"fmt"
	"strconv"

	"github.com/eczhh/FakeStore/internal/model"
	"github.com/eczhh/FakeStore/internal/service"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Submit the cart as a new order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := app.engine.SubmitOrder(cmd.Context(), app.cart.Snapshot())
			if err != nil {
				// корзина остаётся как была, команду можно повторить
				return err
			}
			app.cart.Clear()
			fmt.Printf("order %d created\n", orderID)
			return nil
		},
	}
}

func newOrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Track orders through their lifecycle",
	}
	cmd.AddCommand(
		newOrdersListCmd(app),
		newOrdersPayCmd(app),
		newOrdersReceiveCmd(app),
	)
	return cmd
}

func newOrdersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Fetch and show orders grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buckets, err := app.engine.RefreshOrders(cmd.Context())
			if err != nil {
				return err
			}
			printBuckets(buckets)
			return nil
		},
	}
}

// transitionOrder обновляет список, выполняет переход и печатает свежие корзины
// предварительное обновление нужно, чтобы движок знал текущий статус заказа
func transitionOrder(app *App, cmd *cobra.Command, arg string, target model.Status) error {
	orderID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", arg)
	}

	if _, err := app.engine.RefreshOrders(cmd.Context()); err != nil {
		return err
	}

	buckets, err := app.engine.Transition(cmd.Context(), orderID, target)
	if err != nil {
		return err
	}

	fmt.Printf("order %d is now %s\n\n", orderID, target)
	printBuckets(buckets)
	return nil
}

func newOrdersPayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Pay a new order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transitionOrder(app, cmd, args[0], model.StatusPaid)
		},
	}
}

func newOrdersReceiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "receive <order-id>",
		Short: "Confirm delivery of a paid order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transitionOrder(app, cmd, args[0], model.StatusDelivered)
		},
	}
}

func printBuckets(buckets service.Buckets) {
	printBucket("NEW", buckets.New)
	printBucket("PAID", buckets.Paid)
	printBucket("DELIVERED", buckets.Delivered)
}

func printBucket(title string, orders []model.Order) {
	fmt.Printf("%s (%d)\n", title, len(orders))
	for _, order := range orders {
		fmt.Printf("  order %d — %d items, $%.2f\n", order.ID, len(order.Items), order.TotalPrice)
		for _, item := range order.Items {
			fmt.Printf("    %dx %s\n", item.Quantity, item.Title)
		}
	}
}
