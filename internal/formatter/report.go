// Package formatter renders the plain-text run report printed by the worker.
package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"showlist/internal/models"
	"showlist/internal/output"
)

// Summary renders the end-of-run report: stage counts, artifact totals, and
// timing, as an aligned two-column table.
func Summary(result *models.Result, manifest *output.Manifest) string {
	rows := [][]string{
		{"Records extracted", fmt.Sprintf("%d", result.Stats.RecordsExtracted)},
		{"Events emitted", fmt.Sprintf("%d", result.Stats.EventsEmitted)},
		{"Artists", fmt.Sprintf("%d", result.Stats.ArtistCount)},
		{"Venues", fmt.Sprintf("%d", result.Stats.VenueCount)},
		{"Chunks", fmt.Sprintf("%d", result.Stats.ChunkCount)},
		{"Errors", fmt.Sprintf("%d", result.Stats.ErrorCount)},
		{"Warnings", fmt.Sprintf("%d", result.Stats.WarningCount)},
		{"Duration", result.Stats.Duration.String()},
	}

	if manifest != nil {
		rows = append(rows,
			[]string{"Dataset version", manifest.DatasetVersion[:12]},
			[]string{"Run ID", manifest.RunID},
		)
	}

	return renderTable(rows)
}

// Diagnostics renders up to limit diagnostics, errors first, one per line.
func Diagnostics(result *models.Result, limit int) string {
	if limit <= 0 {
		return ""
	}

	var b strings.Builder

	shown := 0

	write := func(severity string, diags []models.Diagnostic) {
		for _, d := range diags {
			if shown >= limit {
				return
			}

			fmt.Fprintf(&b, "%s line %d [%s]: %s\n", severity, d.Line, d.Type, d.Message)

			shown++
		}
	}

	write("ERROR", result.Errors)
	write("WARN ", result.Warnings)

	remaining := len(result.Errors) + len(result.Warnings) - shown
	if remaining > 0 {
		fmt.Fprintf(&b, "… and %d more\n", remaining)
	}

	return b.String()
}

// renderTable aligns rows on display width, so wide runes in venue or artist
// names do not skew the columns.
func renderTable(rows [][]string) string {
	labelWidth := 0

	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder

	for _, row := range rows {
		pad := labelWidth - runewidth.StringWidth(row[0])
		b.WriteString(row[0])
		b.WriteString(strings.Repeat(" ", pad+2))
		b.WriteString(row[1])
		b.WriteByte('\n')
	}

	return b.String()
}
