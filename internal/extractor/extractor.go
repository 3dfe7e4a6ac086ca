// Package extractor turns the raw listing text into candidate records. Events
// in the source are 1, 2, or N physical lines, so extraction is a line-scanning
// state machine rather than a per-line parse.
package extractor

import (
	"strings"

	"showlist/internal/models"
	"showlist/internal/textnorm"
)

// Extractor groups source lines into candidate event records.
type Extractor struct{}

// NewExtractor creates a new extractor instance.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// state machine states.
const (
	awaitingDate = iota
	accumulating
)

// inlineVenueMarker splits a single-line record ("aug 15 fri Band at Venue, ...").
const inlineVenueMarker = " at "

// Extract scans the events source text and returns the candidate records in
// source order. Malformed input produces warnings, never errors: unrecognized
// lines are skipped and incomplete trailing records are discarded.
func (e *Extractor) Extract(content string) ([]models.RawEventRecord, models.DiagnosticList) {
	var (
		records []models.RawEventRecord
		diags   models.DiagnosticList
		current models.RawEventRecord
		raw     []string
	)

	state := awaitingDate

	discardIncomplete := func() {
		diags.AddWarning(current.LineNumber, models.DiagIncomplete,
			"record has no venue line", strings.Join(raw, "\n"))

		raw = nil
	}

	complete := func() {
		current.RawText = strings.Join(raw, "\n")
		records = append(records, current)
		raw = nil
		state = awaitingDate
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}

		header, isHeader := textnorm.MatchDateHeader(trimmed)

		if isHeader {
			// A new date header while a record is still open means the
			// previous record never got its venue line.
			if state == accumulating {
				discardIncomplete()
			}

			current = models.RawEventRecord{
				DateString: headerDateString(trimmed),
				LineNumber: lineNo,
			}
			raw = []string{trimmed}

			// Single-line event: the header itself carries "<artists> at <venue...>".
			if idx := strings.Index(header.Rest, inlineVenueMarker); idx >= 0 {
				current.ArtistLine = strings.TrimSpace(header.Rest[:idx])
				current.VenueLine = "at " + strings.TrimSpace(header.Rest[idx+len(inlineVenueMarker):])
				complete()

				continue
			}

			if header.Rest != "" {
				current.ArtistLine = header.Rest
			}

			state = accumulating

			continue
		}

		if state == awaitingDate {
			diags.AddWarning(lineNo, models.DiagFormat,
				"line outside of any record", trimmed)

			continue
		}

		raw = append(raw, trimmed)

		// Venue line completes the record.
		if strings.HasPrefix(strings.ToLower(trimmed), "at ") {
			current.VenueLine = trimmed
			complete()

			continue
		}

		// Continuation: additional support acts on their own line.
		if current.ArtistLine == "" {
			current.ArtistLine = trimmed
		} else {
			current.ArtistLine += ", " + trimmed
		}
	}

	if state == accumulating {
		discardIncomplete()
	}

	return records, diags
}

// headerDateString returns the "mon dd www" prefix of a header line.
func headerDateString(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return line
	}

	return strings.Join(fields[:3], " ")
}
