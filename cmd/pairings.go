package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/pairstats/internal/pairing"
	"github.com/pable/pairstats/internal/report"
)

var pairingsCmd = &cobra.Command{
	Use:   "pairings <player>",
	Short: "Show all stored pairing rows touching a player",
	Long:  "Show every canonical pairing row the player appears in, as stored. Counters are low/high oriented; use 'h2h' or 'matchups' for the player's own perspective.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPairings,
}

func runPairings(cmd *cobra.Command, args []string) error {
	p, err := parsePlayerID(args[0])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	rows, err := pairing.New(db).PairingsFor(p)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stdout, "No pairings recorded for player %d.\n", p)
		return nil
	}
	report.PrintPairingTable(os.Stdout, p, rows)
	return nil
}
