package normalizer

import (
	"testing"

	"showlist/internal/models"
)

func newTestDetector() *HeadlinerDetector {
	return NewHeadlinerDetector(
		map[string]bool{"fox theater": true, "greek theatre": true},
		map[string]bool{"924 gilman": true, "thee stork club": true},
	)
}

func price(v float64) *models.VenueDetails {
	return &models.VenueDetails{PriceMin: &v, PriceMax: &v}
}

func TestHeadlinerDetector_SingleArtist(t *testing.T) {
	d := newTestDetector()

	idx, source := d.Detect("Night Moves", []string{"Night Moves"}, "the chapel", nil)
	if idx != 0 || source != HeadlinerSingle {
		t.Errorf("Detect = (%d, %q), want (0, %q)", idx, source, HeadlinerSingle)
	}
}

func TestHeadlinerDetector_ExplicitCues(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		name    string
		rawLine string
		artists []string
		wantIdx int
	}{
		{
			name:    "Special guest marks support",
			rawLine: "CAKE with special guests The Moss",
			artists: []string{"CAKE", "The Moss"},
			wantIdx: 0,
		},
		{
			name:    "Headlined by",
			rawLine: "An Evening headlined by Scowl, Torena",
			artists: []string{"An Evening", "Scowl", "Torena"},
			wantIdx: 1,
		},
		{
			name:    "X headlines",
			rawLine: "Torena headlines, Scowl",
			artists: []string{"Torena", "Scowl"},
			wantIdx: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, source := d.Detect(tt.rawLine, tt.artists, "the chapel", nil)
			if idx != tt.wantIdx {
				t.Errorf("Detect idx = %d, want %d", idx, tt.wantIdx)
			}

			if source != HeadlinerCue {
				t.Errorf("Detect source = %q, want %q", source, HeadlinerCue)
			}
		})
	}
}

func TestHeadlinerDetector_MajorVenueFirstBilling(t *testing.T) {
	d := newTestDetector()

	idx, source := d.Detect("Strfkr, Mamalarky", []string{"Strfkr", "Mamalarky"}, "fox theater", nil)
	if idx != 0 || source != HeadlinerMajorVenue {
		t.Errorf("Detect = (%d, %q), want (0, %q)", idx, source, HeadlinerMajorVenue)
	}
}

func TestHeadlinerDetector_DIYTouringAct(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		name       string
		artists    []string
		wantIdx    int
		wantSource string
	}{
		{
			name:       "All-caps touring act in the middle",
			artists:    []string{"The Loners", "MISFITS", "Ratbath"},
			wantIdx:    1,
			wantSource: HeadlinerDIY,
		},
		{
			name:       "Tribute act",
			artists:    []string{"Ratbath", "Sweet Child (GNR tribute)"},
			wantIdx:    1,
			wantSource: HeadlinerDIY,
		},
		{
			name:       "Two candidates is ambiguous, falls through",
			artists:    []string{"MISFITS", "DRI", "Ratbath"},
			wantIdx:    0,
			wantSource: HeadlinerDefault,
		},
		{
			name:       "No candidates falls through",
			artists:    []string{"The Loners", "Ratbath"},
			wantIdx:    0,
			wantSource: HeadlinerDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, source := d.Detect("", tt.artists, "924 gilman", nil)
			if idx != tt.wantIdx || source != tt.wantSource {
				t.Errorf("Detect = (%d, %q), want (%d, %q)", idx, source, tt.wantIdx, tt.wantSource)
			}
		})
	}
}

func TestHeadlinerDetector_PriceTier(t *testing.T) {
	d := newTestDetector()

	idx, source := d.Detect("Scowl, Torena", []string{"Scowl", "Torena"}, "the chapel", price(45))
	if idx != 0 || source != HeadlinerPrice {
		t.Errorf("Detect = (%d, %q), want (0, %q)", idx, source, HeadlinerPrice)
	}

	// Below the threshold the price tier has no opinion.
	_, source = d.Detect("Scowl, Torena", []string{"Scowl", "Torena"}, "the chapel", price(15))
	if source != HeadlinerDefault {
		t.Errorf("Detect source = %q, want %q", source, HeadlinerDefault)
	}
}

func TestHeadlinerDetector_DefaultFirstArtist(t *testing.T) {
	d := newTestDetector()

	idx, source := d.Detect("Scowl, Torena", []string{"Scowl", "Torena"}, "the chapel", nil)
	if idx != 0 || source != HeadlinerDefault {
		t.Errorf("Detect = (%d, %q), want (0, %q)", idx, source, HeadlinerDefault)
	}
}
