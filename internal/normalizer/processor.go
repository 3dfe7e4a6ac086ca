package normalizer

import (
	"fmt"
	"time"

	"showlist/internal/contentid"
	"showlist/internal/extractor"
	"showlist/internal/models"
	"showlist/internal/textnorm"
)

// Options carries the calendar anchors and the externally supplied correction
// and allowlist tables. Tables are plain data so they can be extended through
// configuration without code changes.
type Options struct {
	// Year anchors the yearless date headers.
	Year int
	// Location is where date midnights and show times are computed.
	Location *time.Location
	// ArtistFixes maps known mis-joined artist tokens to corrected name lists.
	ArtistFixes map[string][]string
	// CamelAllowPrefixes lists legitimate camelCase name prefixes ("Mc", "Di").
	CamelAllowPrefixes []string
	// CityAliases maps normalized city shorthand to canonical display names.
	CityAliases map[string]string
	// MajorVenues and DIYVenues are display names of venues with known billing
	// behavior; matched on normalized form.
	MajorVenues []string
	DIYVenues   []string
	// Capacities maps venue display names to known capacities.
	Capacities map[string]int
	// MaxArtistsPerRecord is the warning threshold for overloaded records.
	MaxArtistsPerRecord int
}

// Processor normalizes candidate records into validated events, resolving
// artists and venues through the run Context as it goes.
type Processor struct {
	opts        Options
	venueLine   *extractor.VenueLineParser
	headliner   *HeadlinerDetector
	validator   *Validator
	majorVenues map[string]bool
	diyVenues   map[string]bool
	capacities  map[string]int
}

// NewProcessor creates a processor instance from the given options.
func NewProcessor(opts Options) *Processor {
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	if opts.MaxArtistsPerRecord <= 0 {
		opts.MaxArtistsPerRecord = 8
	}

	major := normalizeSet(opts.MajorVenues)
	diy := normalizeSet(opts.DIYVenues)

	capacities := make(map[string]int, len(opts.Capacities))
	for name, seats := range opts.Capacities {
		capacities[textnorm.NormalizeName(name)] = seats
	}

	return &Processor{
		opts:        opts,
		venueLine:   extractor.NewVenueLineParser(opts.CityAliases),
		headliner:   NewHeadlinerDetector(major, diy),
		validator:   NewValidator(),
		majorVenues: major,
		diyVenues:   diy,
		capacities:  capacities,
	}
}

// Normalize processes records in source order and returns the emitted events.
// Every dropped record leaves an error diagnostic; suspicious but usable
// records leave warnings.
func (p *Processor) Normalize(records []models.RawEventRecord, ctx *Context) ([]models.Event, models.DiagnosticList) {
	var (
		events []models.Event
		diags  models.DiagnosticList
	)

	for _, rec := range records {
		if event, ok := p.normalizeRecord(rec, ctx, &diags); ok {
			events = append(events, event)
		}
	}

	return events, diags
}

func (p *Processor) normalizeRecord(rec models.RawEventRecord, ctx *Context, diags *models.DiagnosticList) (models.Event, bool) {
	// 1. Date.
	header, err := textnorm.ParseDateString(rec.DateString)
	if err != nil {
		diags.AddError(rec.LineNumber, models.DiagValidation, err.Error(), rec.RawText)

		return models.Event{}, false
	}

	date, err := textnorm.ResolveDate(header, p.opts.Year, p.opts.Location)
	if err != nil {
		diags.AddError(rec.LineNumber, models.DiagValidation, err.Error(), rec.RawText)

		return models.Event{}, false
	}

	if !textnorm.WeekdayMatches(header, date) {
		diags.AddWarning(rec.LineNumber, models.DiagFormat,
			fmt.Sprintf("weekday %q does not fall on %s in %d", header.Weekday, textnorm.ISODate(date), p.opts.Year),
			rec.RawText)
	}

	// 2. Venue line.
	details, err := p.venueLine.Parse(rec.VenueLine)
	if err != nil {
		diags.AddError(rec.LineNumber, models.DiagValidation, err.Error(), rec.RawText)

		return models.Event{}, false
	}

	// 3. Artists.
	names := SplitArtistLine(rec.ArtistLine, p.opts.ArtistFixes)
	if len(names) == 0 {
		diags.AddError(rec.LineNumber, models.DiagValidation, "no artists found on record", rec.RawText)

		return models.Event{}, false
	}

	for _, name := range names {
		if SuspectCamelCase(name, p.opts.CamelAllowPrefixes) {
			diags.AddWarning(rec.LineNumber, models.DiagDataQuality,
				fmt.Sprintf("artist %q looks like two names joined without a space", name), rec.RawText)
		}
	}

	if len(names) > p.opts.MaxArtistsPerRecord {
		diags.AddWarning(rec.LineNumber, models.DiagDataQuality,
			fmt.Sprintf("%d artists on one record", len(names)), rec.RawText)
	}

	// 4. Dedup on (date, venue, provisional headliner).
	isoDate := textnorm.ISODate(date)
	normVenue := textnorm.NormalizeName(details.Venue)

	dedupKey := contentid.EventDedupKey(isoDate, normVenue, textnorm.NormalizeName(names[0]))
	if first, fresh := ctx.MarkEventSeen(dedupKey, rec.LineNumber); !fresh {
		diags.AddWarning(rec.LineNumber, models.DiagDataQuality,
			fmt.Sprintf("duplicate of record at line %d", first), rec.RawText)

		return models.Event{}, false
	}

	// 5. Headliner.
	headIdx, headSource := p.headliner.Detect(rec.ArtistLine, names, normVenue, details)

	// The cascade can pick a different headliner than the provisional one; the
	// final (date, venue, headliner) triple must also stay unique.
	finalKey := contentid.EventDedupKey(isoDate, normVenue, textnorm.NormalizeName(names[headIdx]))
	if finalKey != dedupKey {
		if first, fresh := ctx.MarkEventSeen(finalKey, rec.LineNumber); !fresh {
			diags.AddWarning(rec.LineNumber, models.DiagDataQuality,
				fmt.Sprintf("duplicate of record at line %d", first), rec.RawText)

			return models.Event{}, false
		}
	}

	upcoming := ctx.IsUpcoming(date)

	// 6. Artists: resolve or create, in listing order.
	artistIDs := make([]string, len(names))

	for i, name := range names {
		artist := ctx.ResolveArtist(name)
		artist.TotalEventCount++

		if upcoming {
			artist.UpcomingEventCount++
		}

		artistIDs[i] = artist.ID
	}

	// 7. Venue: resolve or create; the venue file may fill the address later.
	venue, created := ctx.ResolveVenue(details.Venue, details.City)
	if created {
		venue.SourceLineNumber = rec.LineNumber

		if seats, ok := p.capacities[venue.NormalizedName]; ok {
			capacity := seats
			venue.Capacity = &capacity
		}
	}

	if venue.AgeRestriction == "" {
		venue.AgeRestriction = details.AgeRestriction
	}

	venue.TotalEventCount++

	if upcoming {
		venue.UpcomingEventCount++
	}

	// 8. Event assembly.
	event := models.Event{
		ID:                contentid.EventID(isoDate, artistIDs[headIdx], venue.ID),
		Slug:              textnorm.Slugify(names[headIdx]+" "+details.Venue) + "-" + isoDate,
		Date:              isoDate,
		DateEpochMs:       date.UnixMilli(),
		HeadlinerArtistID: artistIDs[headIdx],
		ArtistIDs:         artistIDs,
		VenueID:           venue.ID,
		PriceMin:          details.PriceMin,
		PriceMax:          details.PriceMax,
		IsFree:            details.IsFree,
		AgeRestriction:    details.AgeRestriction,
		Status:            models.StatusConfirmed,
		Tags:              details.Tags,
		VenueType:         p.venueType(normVenue),
		HeadlinerSource:   headSource,
		SourceLineNumber:  rec.LineNumber,
	}

	if event.Tags == nil {
		event.Tags = []string{}
	}

	for _, tag := range event.Tags {
		if tag == "sold-out" {
			event.Status = models.StatusSoldOut

			break
		}
	}

	if details.ShowTime != "" {
		if start, ok := textnorm.ParseClockTime(details.ShowTime, date); ok {
			ms := start.UnixMilli()
			event.StartTimeEpochMs = &ms
		}
	}

	if err := p.validator.Validate(&event); err != nil {
		diags.AddError(rec.LineNumber, models.DiagValidation, err.Error(), rec.RawText)

		return models.Event{}, false
	}

	return event, true
}

func (p *Processor) venueType(normVenue string) string {
	switch {
	case p.majorVenues[normVenue]:
		return models.VenueTypeMajor
	case p.diyVenues[normVenue]:
		return models.VenueTypeDIY
	default:
		return models.VenueTypeClub
	}
}

func normalizeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[textnorm.NormalizeName(name)] = true
	}

	return set
}
