package normalizer

import (
	"fmt"
	"strings"

	"showlist/internal/models"
	"showlist/internal/textnorm"
)

// MergeVenues folds the venue directory file into the registry built during
// event normalization. A venue already discovered via an event record gains
// its address and phone; only venues unseen in the event text get new IDs.
func (p *Processor) MergeVenues(records []models.RawVenueRecord, ctx *Context) models.DiagnosticList {
	var diags models.DiagnosticList

	seen := make(map[string]int, len(records))

	for _, rec := range records {
		norm := textnorm.NormalizeName(rec.Name)
		if norm == "" {
			diags.AddError(rec.LineNumber, models.DiagValidation, "venue entry has no usable name", rec.Name)

			continue
		}

		if first, dup := seen[norm]; dup {
			diags.AddWarning(rec.LineNumber, models.DiagDataQuality,
				fmt.Sprintf("duplicate venue entry, first seen at line %d", first), rec.Name)

			continue
		}

		seen[norm] = rec.LineNumber

		if existing := ctx.VenueByName(norm); existing != nil {
			mergeVenueFields(existing, rec)

			continue
		}

		city := cityFromAddress(rec.Address, p.opts.CityAliases)

		venue, _ := ctx.ResolveVenue(rec.Name, city)
		venue.Address = rec.Address
		venue.Phone = rec.Phone
		venue.AgeRestriction = rec.AgeRestriction
		venue.SourceLineNumber = rec.LineNumber

		if seats, ok := p.capacities[venue.NormalizedName]; ok {
			capacity := seats
			venue.Capacity = &capacity
		}
	}

	return diags
}

// mergeVenueFields fills the gaps on an event-discovered venue without
// touching its identity fields.
func mergeVenueFields(venue *models.Venue, rec models.RawVenueRecord) {
	if venue.Address == "" {
		venue.Address = rec.Address
	}

	if venue.Phone == "" {
		venue.Phone = rec.Phone
	}

	if venue.AgeRestriction == "" {
		venue.AgeRestriction = rec.AgeRestriction
	}
}

// cityFromAddress derives the city from the last comma-delimited address
// segment.
func cityFromAddress(address string, aliases map[string]string) string {
	segments := strings.Split(address, ",")

	last := strings.TrimSpace(segments[len(segments)-1])
	if last == "" {
		return ""
	}

	return textnorm.CanonicalCity(last, aliases)
}
