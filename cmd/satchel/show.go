// Show command prints the current cart.
package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, repo, err := openStore()
		if err != nil {
			return err
		}
		defer repo.close()

		printCart(s.Snapshot())
		return nil
	},
}
