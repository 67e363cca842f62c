package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/silo/pkg/render"
	"github.com/spf13/cobra"
)

var (
	statusJSON       bool
	statusIntrospect bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Run health checks against the store",
	Long: `Check that the storage file, lock, JSON payload and backup
directory are all usable. Exits non-zero when any check fails.

With --introspect, dumps the live component state instead of running
checks.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		if statusIntrospect {
			out, err := json.MarshalIndent(service.State(), "", "  ")
			if err != nil {
				fatal("Failed to encode component state", err)
			}
			fmt.Println(string(out))
			return
		}

		health, err := service.Health(context.Background())
		if err != nil {
			fatal("Failed to run health checks", err)
		}

		if statusJSON {
			out, err := render.HealthJSON(health)
			if err != nil {
				fatal("Failed to encode health report", err)
			}
			fmt.Println(out)
		} else {
			fmt.Println(render.HealthMarkdown(health))
		}

		if !health.OK {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	statusCmd.Flags().BoolVar(&statusIntrospect, "introspect", false, "Dump component state instead of running checks")
}
