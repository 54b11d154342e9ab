package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/pairstats/internal/pairing"
	"github.com/pable/pairstats/internal/report"
)

var h2hCmd = &cobra.Command{
	Use:   "h2h <player> <other>",
	Short: "Show head-to-head statistics between two players",
	Long:  "Show together/against statistics for two players, from the first player's perspective.",
	Args:  cobra.ExactArgs(2),
	RunE:  runH2H,
}

func runH2H(cmd *cobra.Command, args []string) error {
	p, err := parsePlayerID(args[0])
	if err != nil {
		return err
	}
	q, err := parsePlayerID(args[1])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	h, err := pairing.New(db).HeadToHead(p, q)
	if err != nil {
		return err
	}
	if h == nil {
		fmt.Fprintf(os.Stdout, "No games recorded between %d and %d.\n", p, q)
		return nil
	}
	report.PrintHeadToHead(os.Stdout, *h)
	return nil
}

func parsePlayerID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discord ID %q", s)
	}
	return id, nil
}
