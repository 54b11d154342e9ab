package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/pairstats/internal/model"
	"github.com/pable/pairstats/internal/pairing"
	"github.com/pable/pairstats/internal/report"
)

var (
	teammatesMinGames int
	teammatesLimit    int
	teammatesWorst    bool
)

var teammatesCmd = &cobra.Command{
	Use:   "teammates <player>",
	Short: "Rank a player's teammates by shared win rate",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeammates,
}

func init() {
	teammatesCmd.Flags().IntVar(&teammatesMinGames, "min-games", 0, "minimum shared games (default from PAIRSTATS_MIN_GAMES)")
	teammatesCmd.Flags().IntVar(&teammatesLimit, "limit", 0, "maximum rows (default from PAIRSTATS_LIMIT)")
	teammatesCmd.Flags().BoolVar(&teammatesWorst, "worst", false, "rank lowest win rate first")
}

func runTeammates(cmd *cobra.Command, args []string) error {
	p, err := parsePlayerID(args[0])
	if err != nil {
		return err
	}
	minGames, limit := teammatesMinGames, teammatesLimit
	if minGames == 0 {
		minGames = cfg.MinGames
	}
	if limit == 0 {
		limit = cfg.Limit
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	engine := pairing.New(db)
	var standings []model.TeammateStanding
	if teammatesWorst {
		standings, err = engine.WorstTeammates(p, minGames, limit)
	} else {
		standings, err = engine.BestTeammates(p, minGames, limit)
	}
	if err != nil {
		return err
	}
	if len(standings) == 0 {
		fmt.Fprintf(os.Stdout, "No teammates of %d with at least %d shared games.\n", p, minGames)
		return nil
	}
	report.PrintTeammateTable(os.Stdout, p, standings)
	return nil
}
