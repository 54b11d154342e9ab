package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/pairstats/internal/pairing"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute all pairwise statistics from match history",
	Long: `Clear the pairings table and replay every decided match in order.

The result is identical to having applied each match incrementally as it was
recorded; use this to repair drift after manual edits or interrupted writes.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	count, err := pairing.New(db).RebuildAll()
	if err != nil {
		return fmt.Errorf("rebuild pairings: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Rebuilt %d pairings from match history.\n", count)
	return nil
}
