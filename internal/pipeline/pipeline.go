// Package pipeline runs the ingestion stages in order: extraction,
// normalization, venue-file merge, indexing, and artifact output. Stages
// accumulate diagnostics; only infrastructural failures (unreadable input,
// unwritable output) abort a run.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"showlist/internal/config"
	"showlist/internal/extractor"
	"showlist/internal/indexer"
	"showlist/internal/logger"
	"showlist/internal/models"
	"showlist/internal/normalizer"
	"showlist/internal/output"
)

// Runner executes one ingestion run from a fixed configuration.
type Runner struct {
	cfg *config.Config
	log *logger.Logger
}

// NewRunner creates a runner.
func NewRunner(cfg *config.Config, log *logger.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run reads the configured sources, processes them, and writes the dataset.
// The returned result always carries best-effort output plus diagnostics; a
// non-nil error means the run failed before output could be emitted.
func (r *Runner) Run() (*models.Result, *output.Manifest, error) {
	start := time.Now()

	eventsText, err := os.ReadFile(r.cfg.Pipeline.Sources.Events)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read events source: %w", err)
	}

	var venuesText []byte

	if path := r.cfg.Pipeline.Sources.Venues; path != "" {
		venuesText, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read venues source: %w", err)
		}
	}

	result := r.Process(string(eventsText), string(venuesText))

	writer := output.NewWriter(r.cfg.Pipeline.Output.BasePath, r.cfg.Pipeline.Output.PrettyPrint, r.log)

	manifest, err := writer.Write(result)
	if err != nil {
		return nil, nil, err
	}

	result.Stats.Duration = time.Since(start)
	result.Stats.DurationMs = result.Stats.Duration.Milliseconds()

	return result, manifest, nil
}

// Process runs the in-memory stages over already-loaded source text. It is
// deterministic for a fixed configuration: the same text always produces the
// same entities and IDs.
func (r *Runner) Process(eventsText, venuesText string) *models.Result {
	now := time.Now()

	var diags models.DiagnosticList

	// Extraction.
	ex := extractor.NewExtractor()
	records, extractDiags := ex.Extract(eventsText)
	diags.Merge(extractDiags)

	r.log.Debug("extraction complete", "records", len(records), "warnings", len(extractDiags.Warnings))

	// Normalization.
	ctx := normalizer.NewContext(now, r.cfg.ReferenceTime(now))
	processor := normalizer.NewProcessor(normalizer.Options{
		Year:                r.cfg.Year(now),
		Location:            r.cfg.Location(),
		ArtistFixes:         r.cfg.Corrections.ArtistFixes,
		CamelAllowPrefixes:  r.cfg.Corrections.CamelAllowPrefixes,
		CityAliases:         r.cfg.NormalizedCityAliases(),
		MajorVenues:         r.cfg.Venues.Major,
		DIYVenues:           r.cfg.Venues.DIY,
		Capacities:          r.cfg.Venues.Capacities,
		MaxArtistsPerRecord: r.cfg.Pipeline.Validation.MaxArtistsPerRecord,
	})

	events, normDiags := processor.Normalize(records, ctx)
	diags.Merge(normDiags)

	r.log.Debug("normalization complete", "events", len(events), "errors", len(normDiags.Errors))

	// Venue-file merge.
	if venuesText != "" {
		venueRecords, fileDiags := extractor.ParseVenueFile(venuesText)
		diags.Merge(fileDiags)
		diags.Merge(processor.MergeVenues(venueRecords, ctx))

		r.log.Debug("venue merge complete", "entries", len(venueRecords))
	}

	artists := ctx.Artists()
	venues := ctx.Venues()

	// Indexing and chunking.
	chunks := indexer.BuildChunks(events)
	indexes := indexer.BuildIndexes(events, artists, venues)

	if events == nil {
		events = []models.Event{}
	}

	if chunks == nil {
		chunks = []models.EventChunk{}
	}

	result := &models.Result{
		Events:   events,
		Artists:  artists,
		Venues:   venues,
		Chunks:   chunks,
		Indexes:  indexes,
		Errors:   diags.Errors,
		Warnings: diags.Warnings,
		Stats: models.Stats{
			RecordsExtracted: len(records),
			EventsEmitted:    len(events),
			ArtistCount:      len(artists),
			VenueCount:       len(venues),
			ChunkCount:       len(chunks),
			ErrorCount:       len(diags.Errors),
			WarningCount:     len(diags.Warnings),
		},
	}

	if result.Errors == nil {
		result.Errors = []models.Diagnostic{}
	}

	if result.Warnings == nil {
		result.Warnings = []models.Diagnostic{}
	}

	return result
}
