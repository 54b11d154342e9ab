package pairing

import (
	"fmt"
	"sync"

	"github.com/pable/pairstats/internal/model"
	"github.com/pable/pairstats/internal/storage"
)

// Engine is the pairwise aggregation engine. Apply and RebuildAll funnel
// through the same per-match accumulation primitive, so an incremental
// history and a full rebuild land on identical rows.
type Engine struct {
	db *storage.DB

	// mu lets Apply calls run concurrently while RebuildAll, which clears
	// the table, excludes all of them.
	mu sync.RWMutex
}

// New returns an Engine backed by the given store.
func New(db *storage.DB) *Engine {
	return &Engine{db: db}
}

// ValidateRosters checks that both rosters are non-empty and that no player
// appears twice, within a roster or across the two.
func ValidateRosters(team1, team2 []int64) error {
	if len(team1) == 0 || len(team2) == 0 {
		return fmt.Errorf("both rosters need at least one player")
	}
	seen := make(map[int64]bool, len(team1)+len(team2))
	for _, id := range append(append([]int64{}, team1...), team2...) {
		if seen[id] {
			return fmt.Errorf("player %d listed twice: %w", id, ErrInvalidPair)
		}
		seen[id] = true
	}
	return nil
}

// Apply folds one decided match into the pairwise aggregates: one teammate
// upsert per same-side pair, one opponent upsert per cross-side pair. The
// whole match commits in a single transaction, so a failure leaves no
// partial pair updates behind. Returns ErrMatchUndecided when the match has
// no winner.
func (e *Engine) Apply(m model.Match) error {
	if !m.Decided() {
		return ErrMatchUndecided
	}
	if err := ValidateRosters(m.Team1, m.Team2); err != nil {
		return err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := applyMatch(tx, m); err != nil {
		return fmt.Errorf("apply match %d: %w", m.MatchID, err)
	}
	return tx.Commit()
}

// RebuildAll clears the aggregates and replays every decided match in
// ascending match-ID order through the same accumulation as Apply, all in
// one transaction. Returns the resulting row count. Holds the write lock,
// so no incremental apply interleaves with the rebuild.
func (e *Engine) RebuildAll() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := tx.ClearPairings(); err != nil {
		return 0, err
	}
	matches, err := tx.ListDecidedMatches()
	if err != nil {
		return 0, fmt.Errorf("load match history: %w", err)
	}
	for _, m := range matches {
		if err := applyMatch(tx, m); err != nil {
			return 0, fmt.Errorf("replay match %d: %w", m.MatchID, err)
		}
	}
	count, err := tx.CountPairings()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// applyMatch enumerates every pair touched by the match: C(|team1|,2) +
// C(|team2|,2) teammate pairs and |team1|*|team2| opponent pairs, one upsert
// each.
func applyMatch(tx *storage.Tx, m model.Match) error {
	team1Won := m.Winner == model.SideTeam1

	if err := applyTeammates(tx, m.Team1, team1Won, m.MatchID); err != nil {
		return err
	}
	if err := applyTeammates(tx, m.Team2, !team1Won, m.MatchID); err != nil {
		return err
	}

	for _, p := range m.Team1 {
		for _, q := range m.Team2 {
			low, high, err := Canonicalize(p, q)
			if err != nil {
				return err
			}
			// The stored counter tracks the low slot's wins.
			lowWon := team1Won
			if low != p {
				lowWon = !team1Won
			}
			if err := tx.UpsertAgainst(low, high, lowWon, m.MatchID); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyTeammates(tx *storage.Tx, roster []int64, won bool, matchID int64) error {
	for i, p := range roster {
		for _, q := range roster[i+1:] {
			low, high, err := Canonicalize(p, q)
			if err != nil {
				return err
			}
			if err := tx.UpsertTogether(low, high, won, matchID); err != nil {
				return err
			}
		}
	}
	return nil
}
