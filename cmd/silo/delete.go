package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		remaining, err := service.Delete(context.Background(), args[0])
		if err != nil {
			fatal("Failed to delete entry", err)
		}

		fmt.Printf("Entry deleted, %d remaining\n", remaining)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
