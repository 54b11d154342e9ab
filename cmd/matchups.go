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
	matchupsMinGames int
	matchupsLimit    int
	matchupsWorst    bool
)

var matchupsCmd = &cobra.Command{
	Use:   "matchups <player>",
	Short: "Rank a player's opponents by win rate against them",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchups,
}

func init() {
	matchupsCmd.Flags().IntVar(&matchupsMinGames, "min-games", 0, "minimum opposing games (default from PAIRSTATS_MIN_GAMES)")
	matchupsCmd.Flags().IntVar(&matchupsLimit, "limit", 0, "maximum rows (default from PAIRSTATS_LIMIT)")
	matchupsCmd.Flags().BoolVar(&matchupsWorst, "worst", false, "rank lowest win rate first")
}

func runMatchups(cmd *cobra.Command, args []string) error {
	p, err := parsePlayerID(args[0])
	if err != nil {
		return err
	}
	minGames, limit := matchupsMinGames, matchupsLimit
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
	var standings []model.MatchupStanding
	if matchupsWorst {
		standings, err = engine.WorstMatchups(p, minGames, limit)
	} else {
		standings, err = engine.BestMatchups(p, minGames, limit)
	}
	if err != nil {
		return err
	}
	if len(standings) == 0 {
		fmt.Fprintf(os.Stdout, "No opponents of %d with at least %d opposing games.\n", p, minGames)
		return nil
	}
	report.PrintMatchupTable(os.Stdout, p, standings)
	return nil
}
