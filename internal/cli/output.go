package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/yahtzee-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return NewOutputTo(os.Stdout, format)
}

// NewOutputTo creates a new Output formatter writing to w
func NewOutputTo(w io.Writer, format string) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Table:
		o.printTable(v)
	case response.Player:
		o.printScorecard(v)
	case response.StandingsResponse:
		o.printStandings(v)
	case response.ScoreResponse:
		o.printScores(v)
	case response.Event:
		o.printEvent(v)
	case response.Health:
		o.printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printTable(t response.Table) {
	o.printf("Table: %s\n", t.ID)
	o.printf("State: %s\n", t.State)
	o.printf("Rolls per turn: %d\n", t.RollLimit)
	if t.CurrentPlayer != nil {
		o.printf("Current player: %s\n", *t.CurrentPlayer)
	}
	o.printf("Players (%d):\n", len(t.Players))
	for _, p := range t.Players {
		marker := " "
		if t.CurrentPlayer != nil && *t.CurrentPlayer == p.Username {
			marker = "*"
		}
		o.printf(" %s %-16s %4d pts  turn %2d  %s", marker, p.Username, p.Totals.GrandTotal, p.Turn, p.Phase)
		if p.Bot != "" {
			o.printf("  (bot: %s)", p.Bot)
		}
		o.printf("\n")
		if len(p.Dice) > 0 {
			o.printf("     dice: %s  (%d rolls left)\n", formatDice(p.Dice), p.RollsLeft)
		}
		if p.Tentative != nil {
			o.printf("     selected: %s for %d\n", p.Tentative.DisplayName, p.Tentative.Points)
		}
	}
}

// printScorecard prints every committed box followed by the aggregates
func (o *Output) printScorecard(p response.Player) {
	o.printf("Scorecard: %s\n", p.Username)
	for _, s := range p.Scores {
		o.printf("  %-16s %4d\n", s.DisplayName, s.Points)
	}
	o.printf("  %-16s %4d\n", "Upper Score", p.Totals.UpperScore)
	o.printf("  %-16s %4d\n", "Upper Bonus", p.Totals.UpperBonus)
	o.printf("  %-16s %4d\n", "Upper Total", p.Totals.UpperTotal)
	o.printf("  %-16s %4d\n", "Lower Total", p.Totals.LowerTotal)
	o.printf("  %-16s %4d\n", "Grand Total", p.Totals.GrandTotal)
	if len(p.Available) > 0 {
		o.printf("Open: %s\n", strings.Join(p.Available, ", "))
	}
}

func (o *Output) printStandings(s response.StandingsResponse) {
	o.printf("State: %s\n", s.State)
	for i, st := range s.Standings {
		o.printf("  %d. %-16s %4d\n", i+1, st.Username, st.GrandTotal)
	}
	if s.Winner != nil {
		o.printf("Winner: %s\n", *s.Winner)
	}
}

func (o *Output) printScores(s response.ScoreResponse) {
	o.printf("Dice: %v\n", s.Dice)
	for _, sc := range s.Scores {
		legal := ""
		if !sc.Legal {
			legal = " (not legal)"
		}
		o.printf("  %-16s %4d%s\n", sc.DisplayName, sc.Points, legal)
	}
}

func (o *Output) printEvent(e response.Event) {
	line := fmt.Sprintf("[%s] %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type)
	if e.Username != "" {
		line += " " + e.Username
	}
	if e.Payload != nil {
		data, _ := json.Marshal(e.Payload)
		line += ": " + string(data)
	}
	o.printf("%s\n", line)
}

func formatDice(dice []response.Die) string {
	parts := make([]string, len(dice))
	for i, d := range dice {
		if d.Held {
			parts[i] = fmt.Sprintf("[%d]", d.Value)
		} else {
			parts[i] = fmt.Sprintf(" %d ", d.Value)
		}
	}
	return strings.Join(parts, "")
}
