package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	backupsPattern string
	backupsJSON    bool
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup snapshots, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		infos, err := service.Backups(context.Background(), backupsPattern)
		if err != nil {
			fatal("Failed to list backups", err)
		}

		if backupsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(infos); err != nil {
				fatal("Failed to encode backups", err)
			}
			return
		}

		if len(infos) == 0 {
			fmt.Println("No backups found")
			return
		}
		for _, info := range infos {
			fmt.Printf("%s  %d bytes  %s\n", info.Name, info.Size, info.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

func init() {
	rootCmd.AddCommand(backupsCmd)
	backupsCmd.Flags().StringVar(&backupsPattern, "pattern", "", "Glob pattern to filter backup names")
	backupsCmd.Flags().BoolVar(&backupsJSON, "json", false, "Output in JSON format")
}
