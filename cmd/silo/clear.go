package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var clearConfirm bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry in the store",
	Long: `Remove all entries. A backup of the current state is written first,
so a mistaken clear can be recovered from the backup directory.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !clearConfirm {
			fmt.Println("Refusing to clear the store without --confirm")
			os.Exit(1)
		}

		service := newService()

		cleared, err := service.Clear(context.Background(), clearConfirm)
		if err != nil {
			fatal("Failed to clear store", err)
		}

		fmt.Printf("Cleared %d entries\n", cleared)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVar(&clearConfirm, "confirm", false, "Confirm the destructive clear")
}
