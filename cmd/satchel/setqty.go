// Set-qty command changes a cart line's quantity. This is the interactive
// surface, so it clamps at 1; deleting a line is what remove is for.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setQtyCmd = &cobra.Command{
	Use:   "set-qty INDEX QTY",
	Short: "Set the quantity of the cart line at INDEX",
	Long: `Set-qty sets the quantity of the line at the given zero-based index
and re-derives the line total. Quantities below 1 are clamped to 1; use
remove to delete a line.

Example:
  satchel set-qty 0 3`,
	Args: cobra.ExactArgs(2),
	RunE: runSetQty,
}

func runSetQty(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", args[1], err)
	}
	if qty < 1 {
		qty = 1
	}

	s, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.close()

	s.SetQuantity(index, qty)

	if flagJSON {
		printJSON(s.Snapshot())
		return nil
	}
	fmt.Printf("Cart has %d line(s), grand total %.2f\n", s.Len(), s.GrandTotal())
	return nil
}
