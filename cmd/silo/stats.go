package main

import (
	"context"
	"fmt"

	"github.com/aretw0/silo/pkg/render"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		stats, err := service.Stats(context.Background())
		if err != nil {
			fatal("Failed to compute stats", err)
		}

		if statsJSON {
			out, err := render.StatsJSON(stats)
			if err != nil {
				fatal("Failed to encode stats", err)
			}
			fmt.Println(out)
			return
		}

		fmt.Println(render.StatsMarkdown(stats))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
}
