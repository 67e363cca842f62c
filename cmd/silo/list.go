package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/silo"
	"github.com/aretw0/silo/pkg/render"
	"github.com/spf13/cobra"
)

var (
	listAgent    string
	listTags     []string
	listPriority string
	listSort     string
	listLimit    int
	listSince    string
	listUntil    string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List memory entries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		since, err := parseDate(listSince)
		if err != nil {
			fmt.Printf("Error parsing --since: %v\n", err)
			os.Exit(1)
		}
		until, err := parseDate(listUntil)
		if err != nil {
			fmt.Printf("Error parsing --until: %v\n", err)
			os.Exit(1)
		}

		service := newService()

		entries, err := service.List(context.Background(), silo.ListRequest{
			Agent:    listAgent,
			Tags:     listTags,
			Priority: listPriority,
			Sort:     listSort,
			Limit:    listLimit,
			DateFrom: since,
			DateTo:   until,
		})
		if err != nil {
			fmt.Printf("Error listing entries: %v\n", err)
			os.Exit(1)
		}

		printEntries(entries, listJSON)
	},
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// printEntries renders entries to stdout. Oversized listings come back from
// the renderer already truncated, notice included.
func printEntries(entries []silo.Entry, asJSON bool) {
	format := render.FormatMarkdown
	if asJSON {
		format = render.FormatJSON
	}
	out, _, err := render.Entries(entries, format)
	if err != nil {
		fatal("Failed to render entries", err)
	}
	fmt.Println(out)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listAgent, "agent", "", "Filter by agent name")
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "Filter by tag (repeatable, all must match)")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: chronological, reverse or priority")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum entries to return (0 = all)")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only entries on or after this date (YYYY-MM-DD or RFC 3339)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "Only entries on or before this date (YYYY-MM-DD or RFC 3339)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
