package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/pairstats/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintHeadToHead writes both sides of a head-to-head record from the
// queried player's perspective.
func PrintHeadToHead(w io.Writer, h model.HeadToHead) {
	other := h.Other(h.QueriedID)
	fmt.Fprintf(w, "\nPlayer %d vs player %d  (last match: %d)\n\n", h.QueriedID, other, h.LastMatchID)

	table := newTable(w)
	table.Header("", "GAMES", "WINS", "WIN%")
	table.Append("together",
		strconv.Itoa(h.GamesTogether),
		strconv.Itoa(h.WinsTogether),
		percent(h.WinsTogether, h.GamesTogether),
	)
	table.Append("against",
		strconv.Itoa(h.GamesAgainst),
		strconv.Itoa(h.QueriedWinsAgainst),
		percent(h.QueriedWinsAgainst, h.GamesAgainst),
	)
	table.Render()
}

// PrintTeammateTable writes a teammate standings table for the given player.
func PrintTeammateTable(w io.Writer, playerID int64, standings []model.TeammateStanding) {
	fmt.Fprintf(w, "\nTeammates of player %d\n\n", playerID)

	table := newTable(w)
	table.Header("TEAMMATE", "GAMES", "WINS", "WIN%")
	for _, s := range standings {
		table.Append(
			strconv.FormatInt(s.TeammateID, 10),
			strconv.Itoa(s.GamesTogether),
			strconv.Itoa(s.WinsTogether),
			fmt.Sprintf("%.1f", s.WinRate*100),
		)
	}
	table.Render()
}

// PrintMatchupTable writes an opponent standings table for the given player.
func PrintMatchupTable(w io.Writer, playerID int64, standings []model.MatchupStanding) {
	fmt.Fprintf(w, "\nMatchups of player %d\n\n", playerID)

	table := newTable(w)
	table.Header("OPPONENT", "GAMES", "WINS", "WIN%")
	for _, s := range standings {
		table.Append(
			strconv.FormatInt(s.OpponentID, 10),
			strconv.Itoa(s.GamesAgainst),
			strconv.Itoa(s.WinsAgainst),
			fmt.Sprintf("%.1f", s.WinRate*100),
		)
	}
	table.Render()
}

// PrintPairingTable writes raw canonical pairing rows, marking the slot the
// given player occupies with ">".
func PrintPairingTable(w io.Writer, playerID int64, rows []model.PairAggregate) {
	table := newTable(w)
	table.Header("P1", "P2", "TOGETHER", "WINS_TOG", "AGAINST", "P1_WINS_AG", "LAST_MATCH")
	for _, p := range rows {
		p1 := strconv.FormatInt(p.Player1ID, 10)
		p2 := strconv.FormatInt(p.Player2ID, 10)
		if p.Player1ID == playerID {
			p1 = ">" + p1
		} else {
			p2 = ">" + p2
		}
		table.Append(
			p1, p2,
			strconv.Itoa(p.GamesTogether),
			strconv.Itoa(p.WinsTogether),
			strconv.Itoa(p.GamesAgainst),
			strconv.Itoa(p.Player1WinsAgainst),
			strconv.FormatInt(p.LastMatchID, 10),
		)
	}
	table.Render()
}

func percent(wins, games int) string {
	if games == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f", float64(wins)/float64(games)*100)
}
