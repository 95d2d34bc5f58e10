package surface

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/setscore/setscore/pkg/scoring"
)

// TerminalRenderer renders a score report as a table for humans.
type TerminalRenderer struct{}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func matchColor(m scoring.MatchType) text.Colors {
	if noColor() {
		return nil
	}
	switch m {
	case scoring.MatchExact:
		return text.Colors{text.FgGreen}
	case scoring.MatchClose:
		return text.Colors{text.FgYellow}
	case scoring.MatchPresent:
		return text.Colors{text.FgCyan}
	case scoring.MatchSection:
		return text.Colors{text.FgMagenta}
	}
	return nil
}

func matchLabel(r Row) string {
	if !r.Matched {
		if r.Kind != "song" {
			return "-"
		}
		return "miss"
	}
	return string(r.Match)
}

func (t *TerminalRenderer) Render(w io.Writer, report *Report) error {
	res := report.Result

	header := fmt.Sprintf("%s: %.1f%% (%d/%d points)",
		report.PredictionName, res.Accuracy, res.TotalScore, res.MaxPossibleScore)
	if report.PerformanceName != "" {
		header += " @ " + report.PerformanceName
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Item", "Match", "Pts", "Remarks"})
	for _, row := range report.Rows {
		label := matchLabel(row)
		if c := matchColor(row.Match); row.Matched && c != nil {
			label = c.Sprint(label)
		}
		tw.AppendRow(table.Row{row.Position + 1, row.Label, label, row.Points, row.Remarks})
	}
	tw.Render()
	fmt.Fprintln(w)

	b := res.Breakdown
	fmt.Fprintf(w, "exact %d (%d pts) / close %d (%d pts) / present %d (%d pts)\n",
		b.ExactMatches, b.ExactPoints, b.CloseMatches, b.ClosePoints, b.PresentMatches, b.PresentPoints)

	if b.Bonus.OpeningSong+b.Bonus.ClosingSong+b.Bonus.EncoreBreak > 0 {
		fmt.Fprintf(w, "bonuses: opener %d, closer %d, encore %d\n",
			b.Bonus.OpeningSong, b.Bonus.ClosingSong, b.Bonus.EncoreBreak)
	}
	if len(res.ActualAnnotations) > 0 {
		fmt.Fprintf(w, "%d actual item(s) were predicted at other positions\n", len(res.ActualAnnotations))
	}

	return nil
}
