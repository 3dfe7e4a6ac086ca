package normalizer

import (
	"strings"
	"testing"
	"time"

	"showlist/internal/models"
)

func newTestProcessor() *Processor {
	return NewProcessor(Options{
		Year:     2025,
		Location: time.UTC,
		CityAliases: map[string]string{
			"sf":  "San Francisco",
			"oak": "Oakland",
		},
		MajorVenues:        []string{"Fox Theater", "Greek Theatre"},
		DIYVenues:          []string{"924 Gilman", "Thee Stork Club"},
		Capacities:         map[string]int{"Fox Theater": 2800},
		CamelAllowPrefixes: []string{"Mc"},
	})
}

func record(line int, date, artists, venue string) models.RawEventRecord {
	return models.RawEventRecord{
		DateString: date,
		ArtistLine: artists,
		VenueLine:  venue,
		RawText:    date + " " + artists + "\n" + venue,
		LineNumber: line,
	}
}

func TestProcessor_Normalize_FullRecord(t *testing.T) {
	p := newTestProcessor()
	ctx := testContext(t)

	events, diags := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 fri", "Strfkr, Mamalarky", "at Fox Theater, Oakland a/a $50.60 7pm/8pm"),
	}, ctx)

	if len(diags.Errors) != 0 {
		t.Fatalf("Unexpected errors: %+v", diags.Errors)
	}

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}

	event := events[0]

	if event.Date != "2025-08-15" {
		t.Errorf("Date = %q, want %q", event.Date, "2025-08-15")
	}

	if len(event.ArtistIDs) != 2 {
		t.Fatalf("ArtistIDs = %v, want 2 entries", event.ArtistIDs)
	}

	// Major venue: first-billed artist headlines.
	if event.HeadlinerArtistID != event.ArtistIDs[0] {
		t.Error("Headliner should be the first-billed artist at a major venue")
	}

	if event.HeadlinerSource != HeadlinerMajorVenue {
		t.Errorf("HeadlinerSource = %q, want %q", event.HeadlinerSource, HeadlinerMajorVenue)
	}

	if event.PriceMin == nil || *event.PriceMin != 50.60 || *event.PriceMax != 50.60 {
		t.Errorf("Price = %v-%v, want 50.60-50.60", event.PriceMin, event.PriceMax)
	}

	if event.VenueType != models.VenueTypeMajor {
		t.Errorf("VenueType = %q, want %q", event.VenueType, models.VenueTypeMajor)
	}

	if event.Status != models.StatusConfirmed {
		t.Errorf("Status = %q, want %q", event.Status, models.StatusConfirmed)
	}

	if event.Slug != "strfkr-fox-theater-2025-08-15" {
		t.Errorf("Slug = %q", event.Slug)
	}

	// Show time (the second of "7pm/8pm") lands at 20:00 on the event date.
	if event.StartTimeEpochMs == nil {
		t.Fatal("StartTimeEpochMs not set")
	}

	wantStart := time.Date(2025, time.August, 15, 20, 0, 0, 0, time.UTC).UnixMilli()
	if *event.StartTimeEpochMs != wantStart {
		t.Errorf("StartTimeEpochMs = %d, want %d", *event.StartTimeEpochMs, wantStart)
	}

	// Entities were registered with counts.
	artists := ctx.Artists()
	if len(artists) != 2 {
		t.Fatalf("Expected 2 artists, got %d", len(artists))
	}

	for _, a := range artists {
		if a.TotalEventCount != 1 {
			t.Errorf("Artist %q TotalEventCount = %d, want 1", a.Name, a.TotalEventCount)
		}
	}

	venues := ctx.Venues()
	if len(venues) != 1 {
		t.Fatalf("Expected 1 venue, got %d", len(venues))
	}

	if venues[0].Capacity == nil || *venues[0].Capacity != 2800 {
		t.Errorf("Capacity = %v, want 2800", venues[0].Capacity)
	}
}

func TestProcessor_Normalize_Deterministic(t *testing.T) {
	records := []models.RawEventRecord{
		record(1, "aug 15 fri", "Strfkr, Mamalarky", "at Fox Theater, Oakland a/a $50.60 7pm/8pm"),
	}

	first, _ := newTestProcessor().Normalize(records, testContext(t))
	second, _ := newTestProcessor().Normalize(records, testContext(t))

	if first[0].ID != second[0].ID {
		t.Errorf("Re-run changed the event ID: %q vs %q", first[0].ID, second[0].ID)
	}

	if first[0].HeadlinerArtistID != second[0].HeadlinerArtistID {
		t.Error("Re-run changed the headliner ID")
	}
}

func TestProcessor_Normalize_DuplicateDropped(t *testing.T) {
	p := newTestProcessor()
	ctx := testContext(t)

	events, diags := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 fri", "Night Moves, Runnner", "at The Chapel, sf $25 8pm"),
		record(5, "aug 15 fri", "Night Moves, Runnner", "at The Chapel, sf $25 sold out 8pm"),
	}, ctx)

	if len(events) != 1 {
		t.Fatalf("Expected 1 event after dedup, got %d", len(events))
	}

	if len(diags.Warnings) != 1 {
		t.Fatalf("Expected 1 duplicate warning, got %+v", diags.Warnings)
	}

	if !strings.Contains(diags.Warnings[0].Message, "line 1") {
		t.Errorf("Warning should name the first occurrence: %q", diags.Warnings[0].Message)
	}

	// Entity counts must not include the dropped duplicate.
	for _, a := range ctx.Artists() {
		if a.TotalEventCount != 1 {
			t.Errorf("Artist %q counted the duplicate: %d", a.Name, a.TotalEventCount)
		}
	}
}

func TestProcessor_Normalize_SameBillDifferentVenues(t *testing.T) {
	p := newTestProcessor()
	ctx := testContext(t)

	events, _ := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 fri", "Night Moves", "at The Chapel, sf $25 8pm"),
		record(3, "aug 15 fri", "Night Moves", "at Golden Bull, oak free 9pm"),
	}, ctx)

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	if events[0].ID == events[1].ID {
		t.Error("Different venues must produce different event IDs")
	}

	artists := ctx.Artists()
	if len(artists) != 1 || artists[0].TotalEventCount != 2 {
		t.Errorf("Artist should be shared across both events: %+v", artists)
	}
}

func TestProcessor_Normalize_SoldOutStatus(t *testing.T) {
	p := newTestProcessor()

	events, _ := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 fri", "Night Moves", "at The Chapel, sf $25 sold out 8pm"),
	}, testContext(t))

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}

	if events[0].Status != models.StatusSoldOut {
		t.Errorf("Status = %q, want %q", events[0].Status, models.StatusSoldOut)
	}
}

func TestProcessor_Normalize_FreeShow(t *testing.T) {
	p := newTestProcessor()

	events, _ := p.Normalize([]models.RawEventRecord{
		record(1, "aug 22 fri", "Kumbia Queers w/ Pinche Chucho", "at Golden Bull, oak 21+ free 9pm"),
	}, testContext(t))

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}

	event := events[0]

	if !event.IsFree || event.PriceMin != nil {
		t.Errorf("Free show: IsFree=%v PriceMin=%v", event.IsFree, event.PriceMin)
	}

	if len(event.ArtistIDs) != 2 {
		t.Errorf("ArtistIDs = %v, want 2 entries", event.ArtistIDs)
	}
}

func TestProcessor_Normalize_WeekdayMismatchWarns(t *testing.T) {
	p := newTestProcessor()

	// aug 15 2025 is a Friday, not a Sunday.
	events, diags := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 sun", "Night Moves", "at The Chapel, sf $25 8pm"),
	}, testContext(t))

	if len(events) != 1 {
		t.Fatalf("Mismatched weekday must not drop the record, got %d events", len(events))
	}

	if len(diags.Warnings) != 1 {
		t.Errorf("Expected 1 weekday warning, got %+v", diags.Warnings)
	}
}

func TestProcessor_Normalize_BadRecordsDropped(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name string
		rec  models.RawEventRecord
	}{
		{"Invalid day", record(1, "feb 30 fri", "Night Moves", "at The Chapel, sf $25")},
		{"Unparseable date", record(1, "not a date", "Night Moves", "at The Chapel, sf $25")},
		{"Venue line without city", record(1, "aug 15 fri", "Night Moves", "at The Chapel $25")},
		{"No artists", record(1, "aug 15 fri", "", "at The Chapel, sf $25")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, diags := p.Normalize([]models.RawEventRecord{tt.rec}, testContext(t))
			if len(events) != 0 {
				t.Fatalf("Expected record to be dropped, got %d events", len(events))
			}

			if len(diags.Errors) != 1 {
				t.Errorf("Expected 1 error, got %+v", diags.Errors)
			}
		})
	}
}

func TestProcessor_Normalize_CamelCaseWarning(t *testing.T) {
	p := newTestProcessor()

	events, diags := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 fri", "JobberShortFuse, Ratbath", "at The Chapel, sf $10 8pm"),
	}, testContext(t))

	if len(events) != 1 {
		t.Fatalf("Suspect name must not drop the record, got %d events", len(events))
	}

	if len(diags.Warnings) != 1 || diags.Warnings[0].Type != models.DiagDataQuality {
		t.Errorf("Expected 1 data-quality warning, got %+v", diags.Warnings)
	}
}

func TestProcessor_Normalize_TooManyArtistsWarning(t *testing.T) {
	p := NewProcessor(Options{
		Year:                2025,
		Location:            time.UTC,
		MaxArtistsPerRecord: 3,
	})

	_, diags := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 fri", "A One, B Two, C Three, D Four", "at The Chapel, San Francisco $10"),
	}, testContext(t))

	if len(diags.Warnings) != 1 {
		t.Errorf("Expected 1 overload warning, got %+v", diags.Warnings)
	}
}

func TestProcessor_Normalize_UpcomingCounts(t *testing.T) {
	p := newTestProcessor()

	now := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	ctx := NewContext(now, now)

	// One past show, one upcoming show, same artist.
	_, diags := p.Normalize([]models.RawEventRecord{
		record(1, "aug 15 fri", "Night Moves", "at The Chapel, sf $25"),
		record(3, "sep 20 sat", "Night Moves", "at Golden Bull, oak free"),
	}, ctx)

	if len(diags.Errors) != 0 {
		t.Fatalf("Unexpected errors: %+v", diags.Errors)
	}

	artists := ctx.Artists()
	if len(artists) != 1 {
		t.Fatalf("Expected 1 artist, got %d", len(artists))
	}

	if artists[0].TotalEventCount != 2 || artists[0].UpcomingEventCount != 1 {
		t.Errorf("Counts = total %d upcoming %d, want 2/1",
			artists[0].TotalEventCount, artists[0].UpcomingEventCount)
	}
}
