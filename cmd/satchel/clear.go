// Clear command empties the cart.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, repo, err := openStore()
		if err != nil {
			return err
		}
		defer repo.close()

		s.Clear()

		if flagJSON {
			printJSON(s.Snapshot())
			return nil
		}
		fmt.Println("Cart cleared")
		return nil
	},
}
