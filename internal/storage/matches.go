package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pable/pairstats/internal/model"
)

// ErrMatchResolved is returned by SetWinner when the match already has a
// winner; aggregates are append-only and a decided match never changes.
var ErrMatchResolved = errors.New("match already resolved")

// InsertMatch stores a match and its participants in one transaction and
// returns the assigned match ID. winner may be SideNone for a pending match.
func (db *DB) InsertMatch(team1, team2 []int64, winner model.Side) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var winning any
	if winner == model.SideTeam1 || winner == model.SideTeam2 {
		winning = int(winner)
	}
	res, err := tx.Exec("INSERT INTO matches(winning_team) VALUES (?)", winning)
	if err != nil {
		return 0, fmt.Errorf("insert match: %w", err)
	}
	matchID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_participants(match_id, discord_id, team_number)
		VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, id := range team1 {
		if _, err := stmt.Exec(matchID, id, 1); err != nil {
			return 0, fmt.Errorf("insert participant %d: %w", id, err)
		}
	}
	for _, id := range team2 {
		if _, err := stmt.Exec(matchID, id, 2); err != nil {
			return 0, fmt.Errorf("insert participant %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return matchID, nil
}

// SetWinner resolves a pending match. Returns ErrMatchResolved if the match
// already has a winner, or sql.ErrNoRows if the match does not exist.
func (db *DB) SetWinner(matchID int64, winner model.Side) error {
	if winner != model.SideTeam1 && winner != model.SideTeam2 {
		return fmt.Errorf("winner must be team1 or team2, got %v", winner)
	}
	res, err := db.conn.Exec(`
		UPDATE matches SET winning_team = ?
		WHERE match_id = ? AND winning_team IS NULL`,
		int(winner), matchID)
	if err != nil {
		return fmt.Errorf("set winner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return sql.ErrNoRows
		}
		return ErrMatchResolved
	}
	return nil
}

// GetMatch returns one match with its rosters, or nil if it does not exist.
func (db *DB) GetMatch(matchID int64) (*model.Match, error) {
	matches, err := listMatches(db.conn, "WHERE m.match_id = ?", matchID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// ListMatches returns every recorded match, pending ones included, ordered by
// ascending match ID.
func (db *DB) ListMatches() ([]model.Match, error) {
	return listMatches(db.conn, "")
}

// ListDecidedMatches returns every match with a resolved winner, ordered by
// ascending match ID. This is the history the rebuild replays.
func (db *DB) ListDecidedMatches() ([]model.Match, error) {
	return listMatches(db.conn, "WHERE m.winning_team IS NOT NULL")
}

// ListDecidedMatches is the transaction-scoped variant, so a rebuild replays
// the same snapshot it clears.
func (t *Tx) ListDecidedMatches() ([]model.Match, error) {
	return listMatches(t.tx, "WHERE m.winning_team IS NOT NULL")
}

// listMatches loads matches joined with their participants and groups the
// participant rows into per-side rosters, preserving ascending match order.
func listMatches(q querier, where string, args ...any) ([]model.Match, error) {
	rows, err := q.Query(`
		SELECT m.match_id, COALESCE(m.winning_team, 0), m.recorded_at,
		       mp.discord_id, mp.team_number
		FROM matches m
		JOIN match_participants mp ON mp.match_id = m.match_id
		`+where+`
		ORDER BY m.match_id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	index := make(map[int64]int)
	for rows.Next() {
		var (
			matchID, discordID int64
			winner, teamNumber int
			recordedAt         string
		)
		if err := rows.Scan(&matchID, &winner, &recordedAt, &discordID, &teamNumber); err != nil {
			return nil, err
		}
		i, ok := index[matchID]
		if !ok {
			i = len(out)
			index[matchID] = i
			out = append(out, model.Match{
				MatchID:    matchID,
				Winner:     model.Side(winner),
				RecordedAt: recordedAt,
			})
		}
		if teamNumber == 1 {
			out[i].Team1 = append(out[i].Team1, discordID)
		} else {
			out[i].Team2 = append(out[i].Team2, discordID)
		}
	}
	return out, rows.Err()
}
