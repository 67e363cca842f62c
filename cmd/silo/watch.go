package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream storage file changes until interrupted",
	Long: `Follow the storage file and print an event for every external
change. Useful for observing what other agents are writing. Stop with
Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx)
		if err != nil {
			fatal("Failed to start watching", err)
		}

		fmt.Println("Watching for changes (Ctrl-C to stop)")
		for event := range events {
			at := time.Unix(event.Timestamp, 0).Format("15:04:05")
			fmt.Printf("[%s] %s %s\n", at, event.Type, event.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
