package extractor

import (
	"regexp"
	"strings"

	"showlist/internal/models"
)

// phonePattern matches "510-555-0100", "510.555.0100", and "(510) 555-0100".
var phonePattern = regexp.MustCompile(`^(?:\(\d{3}\)\s?|\d{3}[-.])\d{3}[-.]\d{4}$`)

// ageTokenPattern matches single-token age restrictions in the venue file.
var ageTokenPattern = regexp.MustCompile(`^(?:a/a|\d{1,2}\+)$`)

// ParseVenueFile parses the standalone venue directory file. Each line is
// comma-delimited: name, address segments, then optional age and phone tokens
// in either order. Lines starting with '#' are comments.
func ParseVenueFile(content string) ([]models.RawVenueRecord, models.DiagnosticList) {
	var (
		records []models.RawVenueRecord
		diags   models.DiagnosticList
	)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.Split(trimmed, ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		if len(parts) < 2 || parts[0] == "" {
			diags.AddWarning(lineNo, models.DiagFormat,
				"venue entry needs at least a name and an address", trimmed)

			continue
		}

		record := models.RawVenueRecord{
			Name:       parts[0],
			LineNumber: lineNo,
		}

		addressParts := parts[1:]

		// Age and phone ride at the end of the line; peel them off so the
		// remaining segments are the address.
		for len(addressParts) > 0 {
			last := strings.ToLower(addressParts[len(addressParts)-1])

			switch {
			case phonePattern.MatchString(last):
				record.Phone = addressParts[len(addressParts)-1]

			case ageTokenPattern.MatchString(last):
				if last == "a/a" {
					record.AgeRestriction = "all-ages"
				} else {
					record.AgeRestriction = last
				}

			default:
				last = ""
			}

			if last == "" {
				break
			}

			addressParts = addressParts[:len(addressParts)-1]
		}

		if len(addressParts) == 0 {
			diags.AddWarning(lineNo, models.DiagFormat,
				"venue entry has no address segments", trimmed)

			continue
		}

		record.Address = strings.Join(addressParts, ", ")
		records = append(records, record)
	}

	return records, diags
}
