package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured row blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, ok := storeFromContext(cmd)
		if !ok {
			return fmt.Errorf("store not found in context")
		}

		ids, err := store.List()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Printf("%s\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
