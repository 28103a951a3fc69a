// Orders command lists the local order log.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders in the local order log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.close()

		orders, err := repo.orders.ListOrders()
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}

		if flagJSON {
			printJSON(orders)
			return nil
		}
		if len(orders) == 0 {
			fmt.Println("No orders logged")
			return nil
		}
		for _, o := range orders {
			fmt.Printf("%-15s  %-20s  %10.2f  %s\n",
				o.OrderID, o.Customer.Name, o.GrandTotal,
				o.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}
