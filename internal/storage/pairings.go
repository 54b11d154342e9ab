package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/pairstats/internal/model"
)

// UpsertTogether records one shared-side game for the canonical pair
// (low, high). The first interaction creates the row and the Nth increments
// it through the same statement, so both paths land on identical counters.
// Callers must pass low < high.
func (t *Tx) UpsertTogether(low, high int64, won bool, matchID int64) error {
	_, err := t.tx.Exec(`
		INSERT INTO player_pairings (player1_id, player2_id, games_together, wins_together, last_match_id)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(player1_id, player2_id) DO UPDATE SET
			games_together = games_together + 1,
			wins_together = wins_together + ?,
			last_match_id = ?,
			updated_at = CURRENT_TIMESTAMP`,
		low, high, boolInt(won), matchID, boolInt(won), matchID,
	)
	if err != nil {
		return fmt.Errorf("upsert together (%d,%d): %w", low, high, err)
	}
	return nil
}

// UpsertAgainst records one opposing-side game for the canonical pair
// (low, high). lowWon indicates whether the player in the low slot won.
func (t *Tx) UpsertAgainst(low, high int64, lowWon bool, matchID int64) error {
	_, err := t.tx.Exec(`
		INSERT INTO player_pairings (player1_id, player2_id, games_against, player1_wins_against, last_match_id)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(player1_id, player2_id) DO UPDATE SET
			games_against = games_against + 1,
			player1_wins_against = player1_wins_against + ?,
			last_match_id = ?,
			updated_at = CURRENT_TIMESTAMP`,
		low, high, boolInt(lowWon), matchID, boolInt(lowWon), matchID,
	)
	if err != nil {
		return fmt.Errorf("upsert against (%d,%d): %w", low, high, err)
	}
	return nil
}

// ClearPairings deletes every pairing row. Used only by the rebuild path.
func (t *Tx) ClearPairings() error {
	if _, err := t.tx.Exec("DELETE FROM player_pairings"); err != nil {
		return fmt.Errorf("clear pairings: %w", err)
	}
	return nil
}

// CountPairings returns the number of pairing rows visible to the transaction.
func (t *Tx) CountPairings() (int, error) {
	return countPairings(t.tx)
}

// CountPairings returns the total number of pairing rows.
func (db *DB) CountPairings() (int, error) {
	return countPairings(db.conn)
}

func countPairings(q querier) (int, error) {
	var count int
	if err := q.QueryRow("SELECT COUNT(1) FROM player_pairings").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

const pairingColumns = `player1_id, player2_id,
	       games_together, wins_together,
	       games_against, player1_wins_against,
	       COALESCE(last_match_id, 0), updated_at`

// GetPairing returns the row for a canonical pair, or nil if the two players
// have never shared a match. Callers must pass low < high.
func (db *DB) GetPairing(low, high int64) (*model.PairAggregate, error) {
	var p model.PairAggregate
	err := db.conn.QueryRow(`
		SELECT ` + pairingColumns + `
		FROM player_pairings
		WHERE player1_id = ? AND player2_id = ?`, low, high).
		Scan(&p.Player1ID, &p.Player2ID,
			&p.GamesTogether, &p.WinsTogether,
			&p.GamesAgainst, &p.Player1WinsAgainst,
			&p.LastMatchID, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PairingsForPlayer returns every pairing row where the player occupies
// either slot, ordered by the canonical key.
func (db *DB) PairingsForPlayer(id int64) ([]model.PairAggregate, error) {
	rows, err := db.conn.Query(`
		SELECT ` + pairingColumns + `
		FROM player_pairings
		WHERE player1_id = ? OR player2_id = ?
		ORDER BY player1_id, player2_id`, id, id)
	if err != nil {
		return nil, err
	}
	return scanPairings(rows)
}

// ListPairings returns every pairing row ordered by the canonical key.
func (db *DB) ListPairings() ([]model.PairAggregate, error) {
	rows, err := db.conn.Query(`
		SELECT ` + pairingColumns + `
		FROM player_pairings
		ORDER BY player1_id, player2_id`)
	if err != nil {
		return nil, err
	}
	return scanPairings(rows)
}

func scanPairings(rows *sql.Rows) ([]model.PairAggregate, error) {
	defer rows.Close()

	var out []model.PairAggregate
	for rows.Next() {
		var p model.PairAggregate
		if err := rows.Scan(&p.Player1ID, &p.Player2ID,
			&p.GamesTogether, &p.WinsTogether,
			&p.GamesAgainst, &p.Player1WinsAgainst,
			&p.LastMatchID, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
