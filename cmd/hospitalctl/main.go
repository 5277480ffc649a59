// Command hospitalctl runs hospital searches from the command line and can
// print the SQL a search would issue without touching the database.
package main

import (
	"fmt"
	"os"

	"hospital-finder/internal/config"
	"hospital-finder/pkg/logger"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.LoadConfig()
	logger.InitLogger("hospitalctl", cfg.Server.Env)

	rootCmd := &cobra.Command{
		Use:           "hospitalctl",
		Short:         "Search hospitals by name, location, specialty and opening hours",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSearchCommand(cfg))
	rootCmd.AddCommand(newFilterCommand(cfg))
	rootCmd.AddCommand(newDetailCommand(cfg))
	rootCmd.AddCommand(newSQLCommand(cfg))

	return rootCmd
}
