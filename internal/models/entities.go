// Package models defines the entities and records produced by the listing pipeline.
package models

import "time"

// Artist represents a performer resolved from one or more event records.
// ID is content-addressed from the normalized name, so the same artist
// receives the same ID across independent ingestion runs.
type Artist struct {
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	NormalizedName     string    `json:"normalizedName"`
	Aliases            []string  `json:"aliases"`
	TotalEventCount    int       `json:"totalEventCount"`
	UpcomingEventCount int       `json:"upcomingEventCount"`
}

// Venue represents a venue resolved from event records and/or the venue
// directory file. Normalized name + city is the identity key; a venue first
// seen in event text and later found in the venue file is merged, not duplicated.
type Venue struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	NormalizedName     string `json:"normalizedName"`
	Address            string `json:"address"`
	City               string `json:"city"`
	AgeRestriction     string `json:"ageRestriction"`
	Capacity           *int   `json:"capacity,omitempty"`
	Phone              string `json:"phone,omitempty"`
	TotalEventCount    int    `json:"totalEventCount"`
	UpcomingEventCount int    `json:"upcomingEventCount"`
	SourceLineNumber   int    `json:"sourceLineNumber"`
}

// Event statuses.
const (
	StatusConfirmed = "confirmed"
	StatusSoldOut   = "sold-out"
)

// Venue type classifications.
const (
	VenueTypeMajor = "major"
	VenueTypeDIY   = "diy"
	VenueTypeClub  = "club"
)

// Event is a single normalized show. ID is content-addressed from
// (date, headliner, venue); no two events in a run share that triple.
type Event struct {
	ID                string   `json:"id"`
	Slug              string   `json:"slug"`
	Date              string   `json:"date"`
	DateEpochMs       int64    `json:"dateEpochMs"`
	StartTimeEpochMs  *int64   `json:"startTimeEpochMs,omitempty"`
	HeadlinerArtistID string   `json:"headlinerArtistId"`
	ArtistIDs         []string `json:"artistIds"`
	VenueID           string   `json:"venueId"`
	PriceMin          *float64 `json:"priceMin,omitempty"`
	PriceMax          *float64 `json:"priceMax,omitempty"`
	IsFree            bool     `json:"isFree"`
	AgeRestriction    string   `json:"ageRestriction"`
	Status            string   `json:"status"`
	Tags              []string `json:"tags"`
	VenueType         string   `json:"venueType"`
	HeadlinerSource   string   `json:"headlinerSource,omitempty"`
	SourceLineNumber  int      `json:"sourceLineNumber"`
}

// EventChunk is a month-partitioned slice of the event dataset, the unit of
// incremental loading for consumers. ChunkID is the YYYY-MM of every member
// event's DateEpochMs.
type EventChunk struct {
	ChunkID   string    `json:"chunkId"`
	DateRange DateRange `json:"dateRange"`
	Events    []Event   `json:"events"`
}

// DateRange is the inclusive date span covered by a chunk.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
