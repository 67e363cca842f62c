package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/silo"
	"github.com/aretw0/silo/pkg/core"
	"github.com/spf13/cobra"
)

var (
	addAgent    string
	addContent  string
	addTags     []string
	addPriority string
	addMetadata string
	addJSON     bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a memory entry",
	Long:  `Record a new entry in the shared store, attributed to an agent.`,
	Run: func(cmd *cobra.Command, args []string) {
		var meta core.Metadata
		if addMetadata != "" {
			if err := json.Unmarshal([]byte(addMetadata), &meta); err != nil {
				fatal("Failed to parse --metadata", err)
			}
		}

		service := newService()

		entry, err := service.Add(context.Background(), silo.AddRequest{
			Agent:    addAgent,
			Content:  addContent,
			Tags:     addTags,
			Priority: addPriority,
			Metadata: meta,
		})
		if err != nil {
			fatal("Failed to add entry", err)
		}

		if addJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entry); err != nil {
				fatal("Failed to encode entry", err)
			}
			return
		}

		fmt.Printf("Entry %s added by %s (%d words)\n", entry.ID, entry.Agent, entry.WordCount)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addAgent, "agent", "", "Agent recording the entry")
	addCmd.Flags().StringVar(&addContent, "content", "", "Entry content")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "Tags for the entry (repeatable)")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "Priority: low, medium or high")
	addCmd.Flags().StringVar(&addMetadata, "metadata", "", "Metadata as a JSON object")
	addCmd.Flags().BoolVar(&addJSON, "json", false, "Output the created entry as JSON")
	addCmd.MarkFlagRequired("agent")
	addCmd.MarkFlagRequired("content")
}
