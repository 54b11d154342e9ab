package pairing

import (
	"sort"

	"github.com/pable/pairstats/internal/model"
)

// The query layer only reads the store. Stored rows are oriented low/high;
// everything viewer-specific happens in the projection functions below, never
// in SQL.

// HeadToHead returns the pair row for p and q reoriented to p's perspective,
// or nil when the two have never shared a match.
func (e *Engine) HeadToHead(p, q int64) (*model.HeadToHead, error) {
	low, high, err := Canonicalize(p, q)
	if err != nil {
		return nil, err
	}
	row, err := e.db.GetPairing(low, high)
	if err != nil || row == nil {
		return nil, err
	}
	h := headToHeadView(*row, p)
	return &h, nil
}

// PairingsFor returns every stored row touching p, as stored. Callers
// reorient per row with the projection helpers if they need p's perspective.
func (e *Engine) PairingsFor(p int64) ([]model.PairAggregate, error) {
	return e.db.PairingsForPlayer(p)
}

// BestTeammates ranks p's teammates by shared win rate, highest first.
// Rows with fewer than minGames shared games are excluded; ties favor the
// larger sample. limit <= 0 means no truncation.
func (e *Engine) BestTeammates(p int64, minGames, limit int) ([]model.TeammateStanding, error) {
	return e.teammates(p, minGames, limit, false)
}

// WorstTeammates ranks p's teammates by shared win rate, lowest first.
func (e *Engine) WorstTeammates(p int64, minGames, limit int) ([]model.TeammateStanding, error) {
	return e.teammates(p, minGames, limit, true)
}

// BestMatchups ranks p's opponents by p's win rate against them, highest
// first.
func (e *Engine) BestMatchups(p int64, minGames, limit int) ([]model.MatchupStanding, error) {
	return e.matchups(p, minGames, limit, false)
}

// WorstMatchups ranks p's opponents by p's win rate against them, lowest
// first.
func (e *Engine) WorstMatchups(p int64, minGames, limit int) ([]model.MatchupStanding, error) {
	return e.matchups(p, minGames, limit, true)
}

func (e *Engine) teammates(p int64, minGames, limit int, ascending bool) ([]model.TeammateStanding, error) {
	// minGames >= 1 keeps the win-rate division safe.
	if minGames < 1 {
		minGames = 1
	}
	rows, err := e.db.PairingsForPlayer(p)
	if err != nil {
		return nil, err
	}

	var out []model.TeammateStanding
	for _, row := range rows {
		if row.GamesTogether < minGames {
			continue
		}
		out = append(out, teammateView(row, p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			if ascending {
				return out[i].WinRate < out[j].WinRate
			}
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].GamesTogether > out[j].GamesTogether
	})
	return truncate(out, limit), nil
}

func (e *Engine) matchups(p int64, minGames, limit int, ascending bool) ([]model.MatchupStanding, error) {
	if minGames < 1 {
		minGames = 1
	}
	rows, err := e.db.PairingsForPlayer(p)
	if err != nil {
		return nil, err
	}

	var out []model.MatchupStanding
	for _, row := range rows {
		if row.GamesAgainst < minGames {
			continue
		}
		out = append(out, matchupView(row, p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			if ascending {
				return out[i].WinRate < out[j].WinRate
			}
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].GamesAgainst > out[j].GamesAgainst
	})
	return truncate(out, limit), nil
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

// ---- Perspective projections ----

// winsAgainstFor returns how many opposing games the viewer won. The stored
// counter tracks the low slot's wins; the high slot gets the rest.
func winsAgainstFor(row model.PairAggregate, viewer int64) int {
	if viewer == row.Player1ID {
		return row.Player1WinsAgainst
	}
	return row.GamesAgainst - row.Player1WinsAgainst
}

func headToHeadView(row model.PairAggregate, viewer int64) model.HeadToHead {
	return model.HeadToHead{
		PairAggregate:      row,
		QueriedID:          viewer,
		QueriedWinsAgainst: winsAgainstFor(row, viewer),
	}
}

func teammateView(row model.PairAggregate, viewer int64) model.TeammateStanding {
	return model.TeammateStanding{
		TeammateID:    row.Other(viewer),
		GamesTogether: row.GamesTogether,
		WinsTogether:  row.WinsTogether,
		WinRate:       float64(row.WinsTogether) / float64(row.GamesTogether),
	}
}

func matchupView(row model.PairAggregate, viewer int64) model.MatchupStanding {
	wins := winsAgainstFor(row, viewer)
	return model.MatchupStanding{
		OpponentID:   row.Other(viewer),
		GamesAgainst: row.GamesAgainst,
		WinsAgainst:  wins,
		WinRate:      float64(wins) / float64(row.GamesAgainst),
	}
}
