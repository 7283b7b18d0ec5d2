package memory

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Kanban column names, in pipeline order.
const (
	ColBacklog    = "backlog"
	ColInProgress = "in_progress"
	ColTesting    = "testing"
	ColVerified   = "verified"
	ColDone       = "done"
)

// Card is one task on the kanban board.
type Card struct {
	ID          string
	Column      string
	Title       string
	Priority    string
	VerifyState string
	LintIssues  int
	Warnings    int
	CoreBugs    int
}

// Board is the parsed per-project kanban file.
type Board struct {
	Project   string
	Updated   string
	LoopCount int
	Cards     []Card
}

// LoadBoard parses <dir>/kanban/<project>/kanban.toon. A missing or
// unparseable file yields an empty board for the project, never an error.
func LoadBoard(dir, project string) Board {
	board := Board{
		Project: project,
		Updated: time.Now().Format("2006-01-02"),
	}

	data, err := os.ReadFile(filepath.Join(dir, "kanban", project, "kanban.toon"))
	if err != nil {
		return board
	}

	inCards := false
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "KANBAN:"):
			board.Project = strings.TrimSpace(strings.TrimPrefix(line, "KANBAN:"))
		case strings.HasPrefix(line, "updated:"):
			board.Updated = strings.TrimSpace(strings.TrimPrefix(line, "updated:"))
		case strings.HasPrefix(line, "loop_count:"):
			board.LoopCount, _ = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "loop_count:")))
		case strings.HasPrefix(line, "[") || strings.Contains(line, "_CARDS"):
			inCards = strings.Contains(line, "CARDS")
		case inCards:
			if card, ok := parseCardLine(line); ok {
				board.Cards = append(board.Cards, card)
			}
		}
	}
	return board
}

// parseCardLine parses one comma-separated card record:
// id,column,title,priority[,owner,verify_state,lint,warnings,bugs].
func parseCardLine(line string) (Card, bool) {
	parts := strings.SplitN(line, ",", 10)
	if len(parts) < 4 {
		return Card{}, false
	}
	card := Card{
		ID:          strings.TrimSpace(parts[0]),
		Column:      strings.TrimSpace(parts[1]),
		Title:       strings.TrimSpace(parts[2]),
		Priority:    strings.TrimSpace(parts[3]),
		VerifyState: "pending",
	}
	if len(parts) >= 6 {
		card.VerifyState = strings.TrimSpace(parts[5])
	}
	if len(parts) >= 7 {
		card.LintIssues, _ = strconv.Atoi(strings.TrimSpace(parts[6]))
	}
	if len(parts) >= 8 {
		card.Warnings, _ = strconv.Atoi(strings.TrimSpace(parts[7]))
	}
	if len(parts) >= 9 {
		card.CoreBugs, _ = strconv.Atoi(strings.TrimSpace(parts[8]))
	}
	return card, true
}

// CountByColumn returns card counts in pipeline order.
func (b Board) CountByColumn() map[string]int {
	counts := map[string]int{}
	for _, c := range b.Cards {
		counts[c.Column]++
	}
	return counts
}

// Progress is the percentage of cards in the done column.
func (b Board) Progress() int {
	if len(b.Cards) == 0 {
		return 0
	}
	return b.CountByColumn()[ColDone] * 100 / len(b.Cards)
}

// Failed returns cards whose verification failed.
func (b Board) Failed() []Card {
	var out []Card
	for _, c := range b.Cards {
		if c.VerifyState == "failed" {
			out = append(out, c)
		}
	}
	return out
}

// WriteStatus renders the board as a bracket-section status report.
func WriteStatus(w io.Writer, b Board) {
	counts := b.CountByColumn()
	progress := b.Progress()

	fmt.Fprintln(w, "[KANBAN]")
	fmt.Fprintf(w, "project: %s\n", b.Project)
	fmt.Fprintf(w, "updated: %s\n", b.Updated)
	fmt.Fprintf(w, "loop_count: %d\n", b.LoopCount)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[PIPELINE]")
	for _, col := range []string{ColBacklog, ColInProgress, ColTesting, ColVerified, ColDone} {
		fmt.Fprintf(w, "%s: %d\n", col, counts[col])
	}
	fmt.Fprintln(w)

	failed := b.Failed()
	fmt.Fprintln(w, "[VERIFICATION]")
	fmt.Fprintf(w, "failed: %d\n", len(failed))
	for _, c := range failed {
		fmt.Fprintf(w, "failed_task: %s,%s,lint:%d,warn:%d,bugs:%d\n",
			c.ID, c.Title, c.LintIssues, c.Warnings, c.CoreBugs)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[PROGRESS]")
	fmt.Fprintf(w, "%s %d%% (%d/%d)\n", progressBar(progress, 20), progress, counts[ColDone], len(b.Cards))
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
