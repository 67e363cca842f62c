package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/silo"
	"github.com/aretw0/silo/pkg/render"
	"github.com/spf13/cobra"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get <entry-id>",
	Short: "Show a single entry by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		entry, err := service.Get(context.Background(), args[0])
		if err != nil {
			fatal("Failed to get entry", err)
		}

		if getJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entry); err != nil {
				fatal("Failed to encode entry", err)
			}
			return
		}

		fmt.Println(render.Markdown([]silo.Entry{*entry}))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
}
