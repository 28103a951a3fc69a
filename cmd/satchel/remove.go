// Remove command deletes a cart line by index.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove INDEX",
	Short: "Remove the cart line at INDEX",
	Long: `Remove deletes the line at the given zero-based index. An index
outside the cart is a no-op.

Example:
  satchel remove 0`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}

	s, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.close()

	s.Remove(index)

	if flagJSON {
		printJSON(s.Snapshot())
		return nil
	}
	fmt.Printf("Cart has %d line(s), grand total %.2f\n", s.Len(), s.GrandTotal())
	return nil
}
