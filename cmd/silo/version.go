package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/silo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of silo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("silo version %s\n", strings.TrimSpace(silo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
