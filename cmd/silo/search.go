package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/silo"
	"github.com/spf13/cobra"
)

var (
	searchCaseSensitive bool
	searchLimit         int
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search entries by content, agent or tag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		entries, err := service.Search(context.Background(), silo.SearchRequest{
			Query:         args[0],
			CaseSensitive: searchCaseSensitive,
			Limit:         searchLimit,
		})
		if err != nil {
			fmt.Printf("Error searching entries: %v\n", err)
			os.Exit(1)
		}

		if !searchJSON && len(entries) > 0 {
			fmt.Printf("# Search Results for: %q\n\n", args[0])
		}
		printEntries(entries, searchJSON)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Match case exactly")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum entries to return (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
