package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/pairstats/internal/model"
	"github.com/pable/pairstats/internal/pairing"
	"github.com/pable/pairstats/internal/storage"
)

var resolveWinner int

var resolveCmd = &cobra.Command{
	Use:   "resolve <match-id> --winner 1|2",
	Short: "Set the winner of a pending match and update pairings",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().IntVar(&resolveWinner, "winner", 0, "winning side: 1 or 2")
	resolveCmd.MarkFlagRequired("winner")
}

func runResolve(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match ID %q", args[0])
	}
	winner := model.Side(resolveWinner)
	if winner != model.SideTeam1 && winner != model.SideTeam2 {
		return fmt.Errorf("--winner must be 1 or 2")
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.SetWinner(matchID, winner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("match %d does not exist", matchID)
		}
		if errors.Is(err, storage.ErrMatchResolved) {
			return fmt.Errorf("match %d is already resolved", matchID)
		}
		return err
	}

	m, err := db.GetMatch(matchID)
	if err != nil {
		return err
	}
	if err := pairing.New(db).Apply(*m); err != nil {
		return fmt.Errorf("update pairings: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Resolved match %d: %s won. Pairings updated.\n", matchID, winner)
	return nil
}
