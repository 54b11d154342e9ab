package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/pairstats/internal/model"
	"github.com/pable/pairstats/internal/pairing"
)

var (
	recordTeam1  string
	recordTeam2  string
	recordWinner int
)

var recordCmd = &cobra.Command{
	Use:   "record --team1 <ids> --team2 <ids> [--winner 1|2]",
	Short: "Record a match and update pairwise statistics",
	Long: `Record a match between two rosters of discord IDs.

With --winner 1 or 2 the match is stored as decided and every pair of
participants is folded into the pairwise aggregates immediately. Without a
winner the match is stored as pending; resolve it later with
'pairstats resolve'.`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordTeam1, "team1", "", "comma-separated discord IDs of team 1")
	recordCmd.Flags().StringVar(&recordTeam2, "team2", "", "comma-separated discord IDs of team 2")
	recordCmd.Flags().IntVar(&recordWinner, "winner", 0, "winning side: 1, 2, or 0 for pending")
	recordCmd.MarkFlagRequired("team1")
	recordCmd.MarkFlagRequired("team2")
}

func runRecord(cmd *cobra.Command, args []string) error {
	team1, err := parseIDList(recordTeam1)
	if err != nil {
		return fmt.Errorf("--team1: %w", err)
	}
	team2, err := parseIDList(recordTeam2)
	if err != nil {
		return fmt.Errorf("--team2: %w", err)
	}
	if err := pairing.ValidateRosters(team1, team2); err != nil {
		return err
	}
	winner := model.Side(recordWinner)
	if winner != model.SideNone && winner != model.SideTeam1 && winner != model.SideTeam2 {
		return fmt.Errorf("--winner must be 0, 1 or 2")
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matchID, err := db.InsertMatch(team1, team2, winner)
	if err != nil {
		return fmt.Errorf("record match: %w", err)
	}

	if winner == model.SideNone {
		fmt.Fprintf(os.Stdout, "Recorded match %d (pending winner). Resolve with 'pairstats resolve %d --winner N'.\n", matchID, matchID)
		return nil
	}

	engine := pairing.New(db)
	if err := engine.Apply(model.Match{MatchID: matchID, Team1: team1, Team2: team2, Winner: winner}); err != nil {
		return fmt.Errorf("update pairings: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Recorded match %d: %s won. Pairings updated.\n", matchID, winner)
	return nil
}

// parseIDList parses a comma-separated list of discord IDs.
func parseIDList(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid discord ID %q", part)
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no discord IDs given")
	}
	return out, nil
}
