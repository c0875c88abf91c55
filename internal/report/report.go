// Package report renders the end-of-run import summary for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/itjobhub/importer/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // bright blue

	languageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	headerRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	sourceStyle = lipgloss.NewStyle().
			Width(22)

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")) // green

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const countersHeader = "fetched  invalid  irrelev  stale  dup  stored  enrich  degrad  failed"

// Render formats the run statistics as a styled multi-line string, one
// block per language plus a grand total.
func Render(stats *pipeline.RunStats) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Import summary"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", stats.Duration().Round(time.Millisecond))))
	b.WriteString("\n")

	for _, lang := range stats.LanguageNames() {
		langStats := stats.Language(lang)

		suffix := ""
		if langStats.LimitHit {
			suffix = dimStyle.Render("  [limit reached]")
		}
		b.WriteString("\n")
		b.WriteString(languageStyle.Render(fmt.Sprintf("%s: %d stored", lang, langStats.Stored)))
		b.WriteString(suffix)
		b.WriteString("\n")
		b.WriteString("  " + sourceStyle.Render("source") + headerRowStyle.Render(countersHeader))
		b.WriteString("\n")

		for _, name := range langStats.SourceNames() {
			s := langStats.Source(name)
			b.WriteString("  " + sourceStyle.Render(name) + counterRow(s))
			if s.FetchFailed {
				b.WriteString(failedStyle.Render("  fetch failed"))
			}
			b.WriteString("\n")
		}
	}

	t := stats.Totals()
	b.WriteString("\n")
	b.WriteString(totalStyle.Render("total"))
	b.WriteString("\n")
	b.WriteString("  " + sourceStyle.Render("") + counterRow(&t))
	b.WriteString("\n")

	return b.String()
}

func counterRow(s *pipeline.SourceStats) string {
	row := fmt.Sprintf("%7d  %7d  %7d  %5d  %3d  %6d  %6d  %6d  ",
		s.Fetched, s.Invalid, s.Irrelevant, s.Stale, s.Duplicate, s.Stored, s.Enriched, s.Degraded)
	failed := fmt.Sprintf("%6d", s.Failed)
	if s.Failed > 0 {
		failed = failedStyle.Render(failed)
	}
	return row + failed
}
