// Package ui renders terminal output for the command line: progress bars
// while files load and a summary once the run ends.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aniketwaliyan/sparkify-etl/internal/load"
	"github.com/aniketwaliyan/sparkify-etl/internal/pipeline"
)

var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

const rule = "  ─────────────────────────────────────"

// RenderSummary formats the run report and, when counts is non-nil, the row
// count of every table.
func RenderSummary(report *pipeline.Report, counts map[string]int64) string {
	var b strings.Builder

	if report.Failed() == 0 {
		b.WriteString(successStyle.Render("  ✓ LOAD COMPLETE") + "\n")
	} else {
		b.WriteString(accentStyle.Render(fmt.Sprintf("  ✗ LOAD FINISHED WITH %d FAILED FILES", report.Failed())) + "\n")
	}
	b.WriteString(mutedStyle.Render(rule) + "\n")
	field(&b, "Run:", report.RunID)

	for _, fr := range report.Families {
		field(&b, fr.Family+":", fmt.Sprintf("%d/%d files, %d instructions", fr.Processed, fr.Found, fr.Instructions))
		for _, f := range fr.Failures {
			b.WriteString("    " + accentStyle.Render("✗") + " " + mutedStyle.Render(f.Error()) + "\n")
		}
	}

	if counts != nil {
		b.WriteString(mutedStyle.Render(rule) + "\n")
		for _, table := range load.Tables {
			field(&b, table+":", fmt.Sprintf("%d rows", counts[table]))
		}
	}

	b.WriteString(mutedStyle.Render(rule) + "\n")
	field(&b, "Time:", report.Duration().Round(time.Millisecond).String())
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", mutedStyle.Render(fmt.Sprintf("%-10s", label)), titleStyle.Render(value))
}
