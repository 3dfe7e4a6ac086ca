package models

import "time"

// Stats summarizes one ingestion run.
type Stats struct {
	RecordsExtracted int           `json:"recordsExtracted"`
	EventsEmitted    int           `json:"eventsEmitted"`
	ArtistCount      int           `json:"artistCount"`
	VenueCount       int           `json:"venueCount"`
	ChunkCount       int           `json:"chunkCount"`
	ErrorCount       int           `json:"errorCount"`
	WarningCount     int           `json:"warningCount"`
	Duration         time.Duration `json:"-"`
	DurationMs       int64         `json:"durationMs"`
}

// Indexes holds the cross-reference lookup tables emitted alongside the chunks.
type Indexes struct {
	ByDate      map[string][]string `json:"byDate"`
	ByArtist    map[string][]string `json:"byArtist"`
	ByVenue     map[string][]string `json:"byVenue"`
	ArtistNames map[string]string   `json:"artistNames"`
	VenueNames  map[string]string   `json:"venueNames"`
	SearchTerms map[string][]string `json:"searchTerms"`
}

// Result is the complete best-effort output of a pipeline run. Data-quality
// problems live in Errors/Warnings; only infrastructural failures abort a run.
type Result struct {
	Events   []Event      `json:"events"`
	Artists  []Artist     `json:"artists"`
	Venues   []Venue      `json:"venues"`
	Chunks   []EventChunk `json:"chunks"`
	Indexes  *Indexes     `json:"indexes"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
	Stats    Stats        `json:"stats"`
}
