package normalizer

import (
	"regexp"
	"strings"

	"showlist/internal/models"
	"showlist/internal/textnorm"
)

// Headliner decision sources, recorded on the event for later review.
const (
	HeadlinerSingle     = "single-artist"
	HeadlinerCue        = "explicit-cue"
	HeadlinerMajorVenue = "major-venue"
	HeadlinerDIY        = "diy-touring-act"
	HeadlinerPrice      = "price"
	HeadlinerDefault    = "default"
)

// expensiveShowThreshold: above this ticket price billing order is reliable.
const expensiveShowThreshold = 30.0

// headlinerInput bundles everything a strategy may inspect.
type headlinerInput struct {
	rawArtistLine string
	artists       []string
	venueNorm     string
	details       *models.VenueDetails
}

// headlinerStrategy is one tier of the cascade: it returns the index of the
// chosen artist, or -1 when it has no opinion.
type headlinerStrategy struct {
	name string
	pick func(in headlinerInput) int
}

// HeadlinerDetector runs an ordered cascade of heuristics; the first strategy
// with an opinion wins and the cascade always degrades to "first artist".
type HeadlinerDetector struct {
	strategies []headlinerStrategy
}

var headlinesPattern = regexp.MustCompile(`(?i)(?:^|,\s*)([^,]+?)\s+headlines\b`)

// NewHeadlinerDetector builds the cascade. majorVenues and diyVenues are sets
// of normalized venue names.
func NewHeadlinerDetector(majorVenues, diyVenues map[string]bool) *HeadlinerDetector {
	return &HeadlinerDetector{
		strategies: []headlinerStrategy{
			{name: HeadlinerCue, pick: pickByTextualCue},
			{name: HeadlinerMajorVenue, pick: func(in headlinerInput) int {
				if majorVenues[in.venueNorm] {
					return 0
				}

				return -1
			}},
			{name: HeadlinerDIY, pick: func(in headlinerInput) int {
				if !diyVenues[in.venueNorm] {
					return -1
				}

				return pickTouringAct(in.artists)
			}},
			{name: HeadlinerPrice, pick: func(in headlinerInput) int {
				if in.details != nil && in.details.PriceMin != nil && *in.details.PriceMin >= expensiveShowThreshold {
					return 0
				}

				return -1
			}},
			{name: HeadlinerDefault, pick: func(headlinerInput) int { return 0 }},
		},
	}
}

// Detect returns the headliner's index within artists and the name of the
// deciding tier. Single-artist records trivially headline themselves.
func (d *HeadlinerDetector) Detect(rawArtistLine string, artists []string, venueNorm string, details *models.VenueDetails) (int, string) {
	if len(artists) == 1 {
		return 0, HeadlinerSingle
	}

	in := headlinerInput{
		rawArtistLine: rawArtistLine,
		artists:       artists,
		venueNorm:     venueNorm,
		details:       details,
	}

	for _, s := range d.strategies {
		if idx := s.pick(in); idx >= 0 && idx < len(artists) {
			return idx, s.name
		}
	}

	return 0, HeadlinerDefault
}

// pickByTextualCue implements the explicit-cue tier. Each phrase carries its
// own positional rule.
func pickByTextualCue(in headlinerInput) int {
	lower := strings.ToLower(in.rawArtistLine)

	// "with special guest" marks everyone after it as support.
	if strings.Contains(lower, "with special guest") {
		return 0
	}

	if idx := matchAfterPhrase(in, lower, "headlined by"); idx >= 0 {
		return idx
	}

	// "<A> headlines"
	if m := headlinesPattern.FindStringSubmatch(in.rawArtistLine); m != nil {
		if idx := matchArtist(m[1], in.artists); idx >= 0 {
			return idx
		}
	}

	if idx := matchAfterPhrase(in, lower, "starring"); idx >= 0 {
		return idx
	}

	// "X presents Y": Y headlines when it resolves to a parsed artist.
	if idx := matchAfterPhrase(in, lower, "presents"); idx >= 0 {
		return idx
	}

	return -1
}

// matchAfterPhrase resolves the text following a cue phrase to an artist index.
func matchAfterPhrase(in headlinerInput, lowerLine, phrase string) int {
	pos := strings.Index(lowerLine, phrase)
	if pos < 0 {
		return -1
	}

	after := in.rawArtistLine[pos+len(phrase):]

	return matchArtist(after, in.artists)
}

// matchArtist resolves a text fragment to the artist it names, comparing
// normalized forms. The fragment may carry trailing text ("Y and friends").
func matchArtist(fragment string, artists []string) int {
	frag := textnorm.NormalizeName(fragment)
	if frag == "" {
		return -1
	}

	for i, name := range artists {
		norm := textnorm.NormalizeName(name)
		if norm == frag || strings.HasPrefix(frag, norm+" ") {
			return i
		}
	}

	return -1
}

// pickTouringAct finds the single artist whose name pattern suggests a touring
// act: an all-caps name or a "(... tribute)" suffix. Only an unambiguous match
// counts; zero or several candidates defer to the next tier.
func pickTouringAct(artists []string) int {
	found := -1

	for i, name := range artists {
		if !looksLikeTouringAct(name) {
			continue
		}

		if found >= 0 {
			return -1
		}

		found = i
	}

	return found
}

func looksLikeTouringAct(name string) bool {
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), "tribute)") {
		return true
	}

	letters := 0

	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}

		if r >= 'A' && r <= 'Z' {
			letters++
		}
	}

	return letters >= 3
}
