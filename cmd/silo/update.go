package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/silo"
	"github.com/aretw0/silo/pkg/core"
	"github.com/spf13/cobra"
)

var (
	updateContent  string
	updateTags     []string
	updatePriority string
	updateMetadata string
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <entry-id>",
	Short: "Update fields of an existing entry",
	Long: `Change the content, tags, priority or metadata of an entry.
Only the flags you pass are changed; the rest of the entry stays as it is.
Passing --tag with an empty value clears the tags.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := silo.UpdateRequest{ID: args[0]}

		if cmd.Flags().Changed("content") {
			req.Content = &updateContent
		}
		if cmd.Flags().Changed("tag") {
			tags := updateTags
			if len(tags) == 1 && tags[0] == "" {
				tags = []string{}
			}
			req.Tags = tags
		}
		if cmd.Flags().Changed("priority") {
			req.Priority = updatePriority
		}
		if updateMetadata != "" {
			var meta core.Metadata
			if err := json.Unmarshal([]byte(updateMetadata), &meta); err != nil {
				fatal("Failed to parse --metadata", err)
			}
			req.Metadata = meta
		}

		if req.Content == nil && req.Tags == nil && req.Priority == "" && req.Metadata == nil {
			fmt.Println("Nothing to update: pass --content, --tag, --priority or --metadata")
			return
		}

		service := newService()

		entry, err := service.Update(context.Background(), req)
		if err != nil {
			fatal("Failed to update entry", err)
		}

		fmt.Printf("Entry %s updated\n", entry.ID)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateContent, "content", "", "Replacement content")
	updateCmd.Flags().StringSliceVar(&updateTags, "tag", nil, "Replacement tags (repeatable, empty value clears)")
	updateCmd.Flags().StringVar(&updatePriority, "priority", "", "New priority: low, medium or high")
	updateCmd.Flags().StringVar(&updateMetadata, "metadata", "", "Replacement metadata, as a JSON object")
}
