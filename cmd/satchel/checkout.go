// Checkout command submits the cart as an order and clears it on completion.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/checkout"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	checkoutName    string
	checkoutPhone   string
	checkoutEmail   string
	checkoutAddress string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Submit the cart as an order",
	Long: `Checkout submits the current cart to the configured order endpoint.
If no endpoint is configured, or the submission fails, the order is written
to the local order log instead so it is never lost. On completion the cart
is cleared.

All four customer fields are required.

Example:
  satchel checkout --name "Ada L" --phone 555-0100 \
      --email ada@example.com --address "1 Loop Rd"`,
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutName, "name", "", "customer name (required)")
	checkoutCmd.Flags().StringVar(&checkoutPhone, "phone", "", "customer phone (required)")
	checkoutCmd.Flags().StringVar(&checkoutEmail, "email", "", "customer email (required)")
	checkoutCmd.Flags().StringVar(&checkoutAddress, "address", "", "customer address (required)")
}

func runCheckout(cmd *cobra.Command, args []string) error {
	s, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.close()

	snapshot := s.Snapshot()
	if len(snapshot.Items) == 0 {
		fmt.Fprintln(os.Stderr, "checkout: cart is empty")
		os.Exit(exitUserError)
	}

	customer := types.Customer{
		Name:    checkoutName,
		Phone:   checkoutPhone,
		Email:   checkoutEmail,
		Address: checkoutAddress,
	}

	submitter := newSubmitter(repo.orders)
	result, err := submitter.Submit(cmd.Context(), snapshot, customer)
	if err != nil {
		if errors.Is(err, types.ErrFieldRequired) {
			fmt.Fprintln(os.Stderr, "checkout:", err)
			os.Exit(exitUserError)
		}
		return err
	}

	// Completion clears the cart, whether the order landed remotely or in
	// the local log.
	s.Clear()

	if flagJSON {
		printJSON(result)
		return nil
	}
	switch result.Source {
	case checkout.SourceServer:
		fmt.Printf("Order %s submitted (total %.2f)\n", result.Order.OrderID, result.Order.GrandTotal)
	default:
		fmt.Printf("Order %s saved to the local order log (total %.2f)\n", result.Order.OrderID, result.Order.GrandTotal)
	}
	return nil
}
