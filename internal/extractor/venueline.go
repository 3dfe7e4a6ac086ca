package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"showlist/internal/models"
	"showlist/internal/textnorm"
)

// Venue line errors.
var (
	ErrNotVenueLine = errors.New("line does not start with \"at \"")
	ErrMissingCity  = errors.New("venue line has no city segment")
	ErrEmptyVenue   = errors.New("venue line has no venue name")
)

// Marker characters carried on venue lines, in legend order.
var markerTags = map[rune]string{
	'#': "new-listing",
	'@': "pit-warning",
	'^': "recommended",
	'$': "benefit",
}

// VenueLineParser parses the compact "at VENUE, CITY AGE $PRICE TIME TAGS"
// sub-grammar into structured fields.
type VenueLineParser struct {
	cityAliases   map[string]string
	pricePattern  *regexp.Regexp
	timePattern   *regexp.Regexp
	agePattern    *regexp.Regexp
	markerPattern *regexp.Regexp
}

// NewVenueLineParser creates a parser with the given city alias table
// (normalized alias -> canonical display name).
func NewVenueLineParser(cityAliases map[string]string) *VenueLineParser {
	return &VenueLineParser{
		cityAliases: cityAliases,
		// $50.60, $10-15, $25.50-30
		pricePattern: regexp.MustCompile(`^\$(\d+(?:\.\d{1,2})?)(?:-\$?(\d+(?:\.\d{1,2})?))?$`),
		// 8pm, 7:30pm, 7pm/8pm (door/show)
		timePattern:   regexp.MustCompile(`^\d{1,2}(?::\d{2})?(?:am|pm)(?:/\d{1,2}(?::\d{2})?(?:am|pm))?$`),
		agePattern:    regexp.MustCompile(`^\d{1,2}\+$`),
		markerPattern: regexp.MustCompile(`^[#@^$]+$`),
	}
}

// Parse parses a single venue line. The grammar is positional only up to the
// city: after the first structured token (age, price, time, marker) any
// unrecognized token is free-text notes.
func (p *VenueLineParser) Parse(line string) (*models.VenueDetails, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(strings.ToLower(trimmed), "at ") {
		return nil, fmt.Errorf("%w: %q", ErrNotVenueLine, line)
	}

	rest := strings.TrimSpace(trimmed[3:])

	venue, tail, found := strings.Cut(rest, ",")
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrMissingCity, line)
	}

	venue = strings.TrimSpace(venue)
	if venue == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyVenue, line)
	}

	details := &models.VenueDetails{Venue: venue}

	var (
		cityTokens []string
		notes      []string
	)

	inCity := true
	tokens := strings.Fields(tail)

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		lower := strings.ToLower(strings.TrimRight(token, ".,!"))

		switch {
		case lower == "a/a":
			details.AgeRestriction = "all-ages"
			inCity = false

		case lower == "all" && i+1 < len(tokens) && strings.ToLower(tokens[i+1]) == "ages":
			details.AgeRestriction = "all-ages"
			inCity = false
			i++

		case p.agePattern.MatchString(lower):
			details.AgeRestriction = lower
			inCity = false

		case p.pricePattern.MatchString(token):
			p.applyPrice(details, token)

			inCity = false

		case lower == "free":
			details.IsFree = true
			inCity = false

		case lower == "sold" && i+1 < len(tokens) && strings.ToLower(strings.TrimRight(tokens[i+1], "!.")) == "out":
			details.Tags = append(details.Tags, "sold-out")
			inCity = false
			i++

		case lower == "sold-out":
			details.Tags = append(details.Tags, "sold-out")
			inCity = false

		case p.timePattern.MatchString(lower):
			door, show, _ := strings.Cut(lower, "/")
			if show == "" {
				details.ShowTime = door
			} else {
				details.DoorTime = door
				details.ShowTime = show
			}

			inCity = false

		case p.markerPattern.MatchString(token):
			for _, r := range token {
				if tag, ok := markerTags[r]; ok {
					details.Tags = append(details.Tags, tag)
				}
			}

			inCity = false

		default:
			if inCity {
				cityTokens = append(cityTokens, token)
			} else {
				notes = append(notes, token)
			}
		}
	}

	if len(cityTokens) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingCity, line)
	}

	details.City = textnorm.CanonicalCity(strings.Join(cityTokens, " "), p.cityAliases)
	details.Notes = strings.Join(notes, " ")

	// A free show can still carry a price token of $0; treat zero as free.
	if details.PriceMin != nil && *details.PriceMin == 0 &&
		(details.PriceMax == nil || *details.PriceMax == 0) {
		details.IsFree = true
		details.PriceMin = nil
		details.PriceMax = nil
	}

	return details, nil
}

func (p *VenueLineParser) applyPrice(details *models.VenueDetails, token string) {
	m := p.pricePattern.FindStringSubmatch(token)
	if m == nil {
		return
	}

	minVal, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}

	maxVal := minVal

	if m[2] != "" {
		if parsed, perr := strconv.ParseFloat(m[2], 64); perr == nil {
			maxVal = parsed
		}
	}

	if maxVal < minVal {
		minVal, maxVal = maxVal, minVal
	}

	details.PriceMin = &minVal
	details.PriceMax = &maxVal
}
