// Add command puts an item in the cart, merging with an existing line when
// the identity matches.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	addID    string
	addTitle string
	addPrice float64
	addQty   int
	addTotal float64
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to the cart",
	Long: `Add puts an item in the cart for the current page. An item with the
same id (or, for id-less items, the same title and price) as an existing line
increments that line's quantity instead of adding a new line.

Malformed values are coerced, never rejected: a blank title becomes
"Untitled", a negative price becomes 0, a missing quantity becomes 1.

Example:
  satchel add --title "Widget" --price 19.99
  satchel add --id bk-042 --title "Gopher Tales" --price 12 --qty 2
  satchel add --title "Bundle" --price 30 --qty 2 --total 50`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "catalog identifier (optional)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "display title")
	addCmd.Flags().Float64Var(&addPrice, "price", 0, "unit price")
	addCmd.Flags().IntVar(&addQty, "qty", 1, "quantity")
	addCmd.Flags().Float64Var(&addTotal, "total", 0, "line total override (default: price * qty)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.close()

	in := types.ItemInput{
		ID:        addID,
		Title:     addTitle,
		UnitPrice: addPrice,
		Quantity:  addQty,
	}
	if cmd.Flags().Changed("total") {
		in.LineTotal = &addTotal
	}
	s.Add(in)

	if flagJSON {
		printJSON(s.Snapshot())
		return nil
	}
	fmt.Printf("Added. Cart has %d line(s), grand total %.2f\n", s.Len(), s.GrandTotal())
	return nil
}
