package models

// RawEventRecord is a candidate event grouped out of the source text by the
// extractor. It only exists between extraction and normalization.
type RawEventRecord struct {
	DateString string `json:"dateString"`
	ArtistLine string `json:"artistLine"`
	VenueLine  string `json:"venueLine"`
	RawText    string `json:"rawText"`
	LineNumber int    `json:"lineNumber"`
}

// RawVenueRecord is one parsed line of the venue directory file.
type RawVenueRecord struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	AgeRestriction string `json:"ageRestriction"`
	Phone          string `json:"phone,omitempty"`
	LineNumber     int    `json:"lineNumber"`
}

// VenueDetails holds the structured fields of a parsed venue line
// ("at VENUE, CITY AGE $PRICE TIME TAGS").
type VenueDetails struct {
	Venue          string
	City           string
	AgeRestriction string
	PriceMin       *float64
	PriceMax       *float64
	IsFree         bool
	DoorTime       string
	ShowTime       string
	Tags           []string
	Notes          string
}
