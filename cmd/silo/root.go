package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/silo"
	"github.com/aretw0/silo/internal/platform"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	storePath  string
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "silo",
	Short: "A shared memory store for agents collaborating through one JSON file",
	Long: `Silo keeps agent memory in a single JSON file guarded by an advisory lock.
Every write goes through an atomic temp-file pipeline with automatic
backups, so concurrent agents never corrupt or lose each other's entries.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newService wires a Service from the persistent flags. The store path
// resolution (flag, then config file, then the default under the home
// directory) happens inside silo.New.
func newService() *silo.Service {
	cfg, err := silo.FindConfig(configPath)
	if err != nil {
		fatal("Failed to locate config", err)
	}
	applyConfigLogLevel(cfg)

	service, err := silo.New(storePath,
		silo.WithConfigFile(cfg),
		silo.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Failed to initialize silo", err)
	}
	return service
}

// applyConfigLogLevel honors the log_level config entry. The --verbose flag
// wins over the file.
func applyConfigLogLevel(cfg string) {
	if verbose || cfg == "" {
		return
	}
	fc, err := platform.LoadFileConfig(cfg)
	if err != nil || fc.LogLevel == "" {
		return
	}

	var level slog.Level
	switch fc.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the storage file (default ~/.silo/memory.json)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a silo.yml config file")
}
