package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/pairstats/internal/config"
	"github.com/pable/pairstats/internal/storage"
)

var (
	dbPath string
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pairstats",
	Short: "Pairwise player statistics tool",
	Long:  "Track how often two players played together or against each other, and who won, over an inhouse match history.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	var err error
	cfg, err = config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cfg = config.Config{MinGames: 3, Limit: 5}
	}

	defaultDB := cfg.DBPath
	if defaultDB == "" {
		defaultDB = filepath.Join(mustUserHome(), ".pairstats", "pairings.db")
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(h2hCmd)
	rootCmd.AddCommand(pairingsCmd)
	rootCmd.AddCommand(teammatesCmd)
	rootCmd.AddCommand(matchupsCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// openDB opens the configured database, creating its parent directory on
// first use.
func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	return storage.Open(dbPath)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
