package pairing

import (
	"errors"
	"testing"

	"github.com/pable/pairstats/internal/model"
	"github.com/pable/pairstats/internal/storage"
)

func openMemEngine(t *testing.T) (*Engine, *storage.DB) {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

// recordAndApply stores a decided match in the history and folds it into the
// aggregates, mirroring what the record command does.
func recordAndApply(t *testing.T, e *Engine, db *storage.DB, team1, team2 []int64, winner model.Side) int64 {
	t.Helper()
	matchID, err := db.InsertMatch(team1, team2, winner)
	if err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	err = e.Apply(model.Match{MatchID: matchID, Team1: team1, Team2: team2, Winner: winner})
	if err != nil {
		t.Fatalf("Apply match %d: %v", matchID, err)
	}
	return matchID
}

var (
	team1 = []int64{1, 2, 3, 4, 5}
	team2 = []int64{6, 7, 8, 9, 10}
)

func TestApplyTeammates(t *testing.T) {
	e, db := openMemEngine(t)
	recordAndApply(t, e, db, team1, team2, model.SideTeam1)

	h, err := e.HeadToHead(1, 2)
	if err != nil {
		t.Fatalf("HeadToHead(1,2): %v", err)
	}
	if h == nil {
		t.Fatal("expected pairing for winning teammates")
	}
	if h.GamesTogether != 1 || h.WinsTogether != 1 {
		t.Errorf("winners: got together=%d wins=%d, want 1/1", h.GamesTogether, h.WinsTogether)
	}

	h, err = e.HeadToHead(6, 7)
	if err != nil {
		t.Fatalf("HeadToHead(6,7): %v", err)
	}
	if h == nil {
		t.Fatal("expected pairing for losing teammates")
	}
	if h.GamesTogether != 1 || h.WinsTogether != 0 {
		t.Errorf("losers: got together=%d wins=%d, want 1/0", h.GamesTogether, h.WinsTogether)
	}
}

func TestApplyOpponentsPerspective(t *testing.T) {
	e, db := openMemEngine(t)
	recordAndApply(t, e, db, team1, team2, model.SideTeam1)

	winner, err := e.HeadToHead(1, 6)
	if err != nil {
		t.Fatalf("HeadToHead(1,6): %v", err)
	}
	if winner.GamesAgainst != 1 || winner.QueriedWinsAgainst != 1 {
		t.Errorf("winner view: against=%d wins=%d, want 1/1", winner.GamesAgainst, winner.QueriedWinsAgainst)
	}

	loser, err := e.HeadToHead(6, 1)
	if err != nil {
		t.Fatalf("HeadToHead(6,1): %v", err)
	}
	if loser.GamesAgainst != 1 || loser.QueriedWinsAgainst != 0 {
		t.Errorf("loser view: against=%d wins=%d, want 1/0", loser.GamesAgainst, loser.QueriedWinsAgainst)
	}
}

func TestApplyRowCount(t *testing.T) {
	e, db := openMemEngine(t)
	recordAndApply(t, e, db, team1, team2, model.SideTeam1)

	// C(5,2)+C(5,2) teammate pairs plus 5*5 opponent pairs, all distinct.
	count, err := db.CountPairings()
	if err != nil {
		t.Fatalf("CountPairings: %v", err)
	}
	if count != 45 {
		t.Errorf("expected 45 pairing rows for a fresh 5v5, got %d", count)
	}
}

func TestApplyAccumulates(t *testing.T) {
	e, db := openMemEngine(t)
	recordAndApply(t, e, db, team1, team2, model.SideTeam1)
	recordAndApply(t, e, db, team1, team2, model.SideTeam2)
	recordAndApply(t, e, db, team1, team2, model.SideTeam1)

	h, err := e.HeadToHead(1, 2)
	if err != nil {
		t.Fatalf("HeadToHead(1,2): %v", err)
	}
	if h.GamesTogether != 3 || h.WinsTogether != 2 {
		t.Errorf("got together=%d wins=%d, want 3/2", h.GamesTogether, h.WinsTogether)
	}

	cross, err := e.HeadToHead(1, 6)
	if err != nil {
		t.Fatalf("HeadToHead(1,6): %v", err)
	}
	if cross.GamesAgainst != 3 || cross.QueriedWinsAgainst != 2 {
		t.Errorf("got against=%d wins=%d, want 3/2", cross.GamesAgainst, cross.QueriedWinsAgainst)
	}
}

func TestApplyUndecided(t *testing.T) {
	e, _ := openMemEngine(t)
	err := e.Apply(model.Match{MatchID: 1, Team1: team1, Team2: team2, Winner: model.SideNone})
	if !errors.Is(err, ErrMatchUndecided) {
		t.Errorf("expected ErrMatchUndecided, got %v", err)
	}
}

func TestApplyOverlappingRosters(t *testing.T) {
	e, _ := openMemEngine(t)
	err := e.Apply(model.Match{MatchID: 1, Team1: []int64{1, 2}, Team2: []int64{2, 3}, Winner: model.SideTeam1})
	if !errors.Is(err, ErrInvalidPair) {
		t.Errorf("expected ErrInvalidPair, got %v", err)
	}
}

func TestApplyCanonicalStorage(t *testing.T) {
	e, db := openMemEngine(t)
	// Rosters deliberately out of order; storage must still be canonical.
	recordAndApply(t, e, db, []int64{200, 100}, []int64{400, 300}, model.SideTeam1)

	h, err := e.HeadToHead(100, 200)
	if err != nil {
		t.Fatalf("HeadToHead(100,200): %v", err)
	}
	if h == nil {
		t.Fatal("expected pairing regardless of input order")
	}
	if h.Player1ID != 100 || h.Player2ID != 200 {
		t.Errorf("expected canonical row (100,200), got (%d,%d)", h.Player1ID, h.Player2ID)
	}
}

func TestApplyLastMatchID(t *testing.T) {
	e, db := openMemEngine(t)
	recordAndApply(t, e, db, team1, team2, model.SideTeam1)
	m2 := recordAndApply(t, e, db, team1, team2, model.SideTeam2)

	h, err := e.HeadToHead(1, 2)
	if err != nil {
		t.Fatalf("HeadToHead: %v", err)
	}
	if h.LastMatchID != m2 {
		t.Errorf("last match: want %d, got %d", m2, h.LastMatchID)
	}
}

// checkCounterBounds verifies the row invariants: non-negative counters and
// wins never exceeding games.
func checkCounterBounds(t *testing.T, rows []model.PairAggregate) {
	t.Helper()
	for _, p := range rows {
		if p.WinsTogether < 0 || p.WinsTogether > p.GamesTogether {
			t.Errorf("pair (%d,%d): wins_together %d out of range [0,%d]",
				p.Player1ID, p.Player2ID, p.WinsTogether, p.GamesTogether)
		}
		if p.Player1WinsAgainst < 0 || p.Player1WinsAgainst > p.GamesAgainst {
			t.Errorf("pair (%d,%d): player1_wins_against %d out of range [0,%d]",
				p.Player1ID, p.Player2ID, p.Player1WinsAgainst, p.GamesAgainst)
		}
	}
}

func TestCounterMonotonicity(t *testing.T) {
	e, db := openMemEngine(t)

	history := []model.Side{model.SideTeam1, model.SideTeam2, model.SideTeam2, model.SideTeam1}
	prev := map[[2]int64]model.PairAggregate{}
	for _, winner := range history {
		recordAndApply(t, e, db, team1, team2, winner)

		rows, err := db.ListPairings()
		if err != nil {
			t.Fatalf("ListPairings: %v", err)
		}
		checkCounterBounds(t, rows)
		for _, p := range rows {
			key := [2]int64{p.Player1ID, p.Player2ID}
			if old, ok := prev[key]; ok {
				if p.GamesTogether < old.GamesTogether || p.GamesAgainst < old.GamesAgainst {
					t.Errorf("pair (%d,%d): counters went backwards", p.Player1ID, p.Player2ID)
				}
			}
			prev[key] = p
		}
	}
}

// normalize strips the mutation timestamp so aggregate states can be compared
// across the incremental and rebuild paths.
func normalize(rows []model.PairAggregate) []model.PairAggregate {
	out := make([]model.PairAggregate, len(rows))
	for i, p := range rows {
		p.UpdatedAt = ""
		out[i] = p
	}
	return out
}

func TestApplyRebuildEquivalence(t *testing.T) {
	e, db := openMemEngine(t)

	// Uneven rosters, shared players across matches, both sides winning.
	type fixture struct {
		team1, team2 []int64
		winner       model.Side
	}
	history := []fixture{
		{[]int64{1, 2, 3, 4, 5}, []int64{6, 7, 8, 9, 10}, model.SideTeam1},
		{[]int64{1, 6, 3}, []int64{2, 7, 9}, model.SideTeam2},
		{[]int64{10, 1}, []int64{5, 6, 7}, model.SideTeam1},
		{[]int64{2, 4, 8}, []int64{1, 3}, model.SideTeam2},
		{[]int64{1, 2, 3, 4, 5}, []int64{6, 7, 8, 9, 10}, model.SideTeam2},
	}
	for _, f := range history {
		recordAndApply(t, e, db, f.team1, f.team2, f.winner)
	}

	incremental, err := db.ListPairings()
	if err != nil {
		t.Fatalf("ListPairings: %v", err)
	}

	count, err := e.RebuildAll()
	if err != nil {
		t.Fatalf("RebuildAll: %v", err)
	}
	if count != len(incremental) {
		t.Errorf("rebuild row count %d != incremental %d", count, len(incremental))
	}

	rebuilt, err := db.ListPairings()
	if err != nil {
		t.Fatalf("ListPairings after rebuild: %v", err)
	}

	a, b := normalize(incremental), normalize(rebuilt)
	if len(a) != len(b) {
		t.Fatalf("row counts differ: incremental %d, rebuilt %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d differs:\n  incremental: %+v\n  rebuilt:     %+v", i, a[i], b[i])
		}
	}
}

// RebuildAll after a single match must match the incremental state too: the
// create path and the increment path share one upsert statement, and this
// guards the creation row against an off-by-one.
func TestRebuildSingleMatch(t *testing.T) {
	e, db := openMemEngine(t)
	recordAndApply(t, e, db, []int64{1, 2}, []int64{3}, model.SideTeam1)

	incremental, err := db.ListPairings()
	if err != nil {
		t.Fatalf("ListPairings: %v", err)
	}
	if _, err := e.RebuildAll(); err != nil {
		t.Fatalf("RebuildAll: %v", err)
	}
	rebuilt, err := db.ListPairings()
	if err != nil {
		t.Fatalf("ListPairings: %v", err)
	}

	a, b := normalize(incremental), normalize(rebuilt)
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRebuildSkipsUndecided(t *testing.T) {
	e, db := openMemEngine(t)
	recordAndApply(t, e, db, []int64{1, 2}, []int64{3, 4}, model.SideTeam1)

	// A pending match sits in the history but carries no winner.
	if _, err := db.InsertMatch([]int64{1, 3}, []int64{2, 4}, model.SideNone); err != nil {
		t.Fatalf("InsertMatch pending: %v", err)
	}

	count, err := e.RebuildAll()
	if err != nil {
		t.Fatalf("RebuildAll: %v", err)
	}
	if count != 6 {
		t.Errorf("expected 6 rows from the single decided 2v2, got %d", count)
	}
	h, err := e.HeadToHead(1, 3)
	if err != nil {
		t.Fatalf("HeadToHead: %v", err)
	}
	if h.GamesTogether != 0 {
		t.Errorf("pending match leaked into aggregates: games_together=%d", h.GamesTogether)
	}
}

func TestRebuildEmptyHistory(t *testing.T) {
	e, _ := openMemEngine(t)
	count, err := e.RebuildAll()
	if err != nil {
		t.Fatalf("RebuildAll on empty history: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 rows, got %d", count)
	}
}
