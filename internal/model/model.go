package model

// Side identifies one of the two rosters in a match.
type Side int

const (
	SideNone  Side = 0 // winner not yet decided
	SideTeam1 Side = 1
	SideTeam2 Side = 2
)

func (s Side) String() string {
	switch s {
	case SideTeam1:
		return "team1"
	case SideTeam2:
		return "team2"
	default:
		return "undecided"
	}
}

// Match is one recorded match: two rosters of discord IDs and the winning
// side, if any. Rosters are disjoint and each has at least one member.
type Match struct {
	MatchID    int64
	Team1      []int64
	Team2      []int64
	Winner     Side // SideNone while the match is pending
	RecordedAt string
}

// Decided reports whether the match has a resolved winner.
func (m Match) Decided() bool {
	return m.Winner == SideTeam1 || m.Winner == SideTeam2
}

// PairAggregate is one row of pairwise counters. Rows are stored canonically
// with Player1ID < Player2ID, so every unordered pair maps to exactly one row.
// Player1WinsAgainst counts opposing-side wins by the Player1ID slot; the
// Player2ID slot's wins are GamesAgainst - Player1WinsAgainst.
type PairAggregate struct {
	Player1ID          int64
	Player2ID          int64
	GamesTogether      int
	WinsTogether       int
	GamesAgainst       int
	Player1WinsAgainst int
	LastMatchID        int64
	UpdatedAt          string
}

// Other returns the pair member that is not id.
func (p PairAggregate) Other(id int64) int64 {
	if p.Player1ID == id {
		return p.Player2ID
	}
	return p.Player1ID
}

// Touches reports whether id occupies either slot of the pair.
func (p PairAggregate) Touches(id int64) bool {
	return p.Player1ID == id || p.Player2ID == id
}

// HeadToHead is a PairAggregate reoriented to the queried player's
// perspective: QueriedWinsAgainst counts opposing-side wins by QueriedID.
type HeadToHead struct {
	PairAggregate
	QueriedID          int64
	QueriedWinsAgainst int
}

// TeammateStanding is one entry of a best/worst-teammates ranking for a
// given player.
type TeammateStanding struct {
	TeammateID    int64
	GamesTogether int
	WinsTogether  int
	WinRate       float64
}

// MatchupStanding is one entry of a best/worst-matchups ranking. WinsAgainst
// and WinRate are from the queried player's perspective.
type MatchupStanding struct {
	OpponentID   int64
	GamesAgainst int
	WinsAgainst  int
	WinRate      float64
}
