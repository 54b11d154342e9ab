package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches recorded yet. Run 'pairstats record' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-19s  %-10s  %-24s  %s\n",
		"ID", "RECORDED", "WINNER", "TEAM1", "TEAM2")
	fmt.Fprintf(os.Stdout, "%-6s  %-19s  %-10s  %-24s  %s\n",
		"──────", "───────────────────", "──────────", "────────────────────────", "─────")
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%-6d  %-19s  %-10s  %-24s  %s\n",
			m.MatchID, m.RecordedAt, m.Winner, idList(m.Team1), idList(m.Team2))
	}
	return nil
}

func idList(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
