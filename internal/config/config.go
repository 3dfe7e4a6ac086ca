// Package config provides configuration management for the listing pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"showlist/internal/textnorm"
)

// Configuration validation errors.
var (
	ErrMissingEventsSource = errors.New("sources.events is required")
	ErrMissingOutputPath   = errors.New("output.base_path is required")
	ErrInvalidYear         = errors.New("calendar.default_year must be 0 or a four-digit year")
	ErrInvalidTimezone     = errors.New("calendar.timezone is not a valid IANA name")
	ErrInvalidReference    = errors.New("calendar.reference_date must be YYYY-MM-DD")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidSampleCount  = errors.New("logging.sample_diagnostics must be non-negative")
	ErrInvalidMaxArtists   = errors.New("validation.max_artists_per_record must be at least 1")
	ErrEmptyFixReplacement = errors.New("corrections.artist_fixes entries need at least one replacement name")
)

// Config is the complete pipeline configuration.
type Config struct {
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Corrections CorrectionsConfig `yaml:"corrections"`
	Venues      VenueTablesConfig `yaml:"venues"`
}

// PipelineConfig contains run-level settings.
type PipelineConfig struct {
	Sources    SourcesConfig    `yaml:"sources"`
	Output     OutputConfig     `yaml:"output"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Logging    LoggingConfig    `yaml:"logging"`
	Validation ValidationConfig `yaml:"validation"`
}

// SourcesConfig points at the two input files.
type SourcesConfig struct {
	Events string `yaml:"events"`
	Venues string `yaml:"venues"`
}

// OutputConfig defines where and how artifacts are written.
type OutputConfig struct {
	BasePath    string `yaml:"base_path"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// CalendarConfig anchors the yearless listing dates.
type CalendarConfig struct {
	// DefaultYear resolves date headers; 0 means the wall-clock year.
	DefaultYear int `yaml:"default_year"`
	// Timezone is the IANA location for midnights and show times.
	Timezone string `yaml:"timezone"`
	// ReferenceDate (YYYY-MM-DD) is the upcoming-count cutoff; empty means now.
	ReferenceDate string `yaml:"reference_date"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level             string `yaml:"level"`
	SampleDiagnostics int    `yaml:"sample_diagnostics"`
}

// ValidationConfig holds data-quality thresholds.
type ValidationConfig struct {
	MaxArtistsPerRecord int `yaml:"max_artists_per_record"`
}

// CorrectionsConfig holds the static correction tables. They are configuration
// data, not code, so new entries need no release.
type CorrectionsConfig struct {
	// ArtistFixes maps known mis-joined tokens to their corrected names.
	ArtistFixes map[string][]string `yaml:"artist_fixes"`
	// CamelAllowPrefixes lists name prefixes with legitimate interior capitals.
	CamelAllowPrefixes []string `yaml:"camel_allow_prefixes"`
	// CityAliases maps listing shorthand to canonical city names.
	CityAliases map[string]string `yaml:"city_aliases"`
}

// VenueTablesConfig holds the venue classification allowlists.
type VenueTablesConfig struct {
	// Major venues have reliable billing order (arenas, large theaters).
	Major []string `yaml:"major"`
	// DIY spaces where local openers are often listed first.
	DIY []string `yaml:"diy"`
	// Capacities maps venue names to known capacities.
	Capacities map[string]int `yaml:"capacities"`
}

// Default returns a complete runnable configuration with the built-in tables.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Sources: SourcesConfig{
				Events: "data/shows.txt",
				Venues: "data/venues.txt",
			},
			Output: OutputConfig{
				BasePath:    "dist/data",
				PrettyPrint: false,
			},
			Calendar: CalendarConfig{
				Timezone: "UTC",
			},
			Logging: LoggingConfig{
				Level:             "info",
				SampleDiagnostics: 10,
			},
			Validation: ValidationConfig{
				MaxArtistsPerRecord: 8,
			},
		},
		Corrections: CorrectionsConfig{
			CamelAllowPrefixes: []string{"Mc", "Mac", "Di", "De", "La", "Le", "Van", "O'"},
			CityAliases: map[string]string{
				"sf":   "San Francisco",
				"s f":  "San Francisco",
				"sj":   "San Jose",
				"oak":  "Oakland",
				"berk": "Berkeley",
				"sac":  "Sacramento",
			},
		},
		Venues: VenueTablesConfig{
			Major: []string{
				"Fox Theater", "Greek Theatre", "The Fillmore", "The Warfield",
				"Bill Graham Civic Auditorium", "Paramount Theatre",
			},
			DIY: []string{
				"924 Gilman", "Golden Bull", "Thee Stork Club", "First Church of the Buzzard",
			},
			Capacities: map[string]int{
				"Fox Theater":   2800,
				"The Fillmore":  1150,
				"The Warfield":  2300,
				"Greek Theatre": 8500,
			},
		},
	}
}

// Load reads a YAML configuration file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pipeline.Sources.Events == "" {
		return ErrMissingEventsSource
	}

	if c.Pipeline.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	year := c.Pipeline.Calendar.DefaultYear
	if year != 0 && (year < 1000 || year > 9999) {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	if tz := c.Pipeline.Calendar.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
		}
	}

	if ref := c.Pipeline.Calendar.ReferenceDate; ref != "" {
		if _, err := time.Parse("2006-01-02", ref); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidReference, ref)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Pipeline.Logging.Level] {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Pipeline.Logging.Level)
	}

	if c.Pipeline.Logging.SampleDiagnostics < 0 {
		return ErrInvalidSampleCount
	}

	if c.Pipeline.Validation.MaxArtistsPerRecord < 1 {
		return ErrInvalidMaxArtists
	}

	for token, names := range c.Corrections.ArtistFixes {
		if len(names) == 0 {
			return fmt.Errorf("%w: %q", ErrEmptyFixReplacement, token)
		}
	}

	return nil
}

// Location resolves the configured timezone, defaulting to UTC.
func (c *Config) Location() *time.Location {
	tz := c.Pipeline.Calendar.Timezone
	if tz == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}

	return loc
}

// Year resolves the calendar year for a run started at now.
func (c *Config) Year(now time.Time) int {
	if c.Pipeline.Calendar.DefaultYear != 0 {
		return c.Pipeline.Calendar.DefaultYear
	}

	return now.In(c.Location()).Year()
}

// ReferenceTime resolves the upcoming-count cutoff for a run started at now.
func (c *Config) ReferenceTime(now time.Time) time.Time {
	ref := c.Pipeline.Calendar.ReferenceDate
	if ref == "" {
		return now
	}

	t, err := time.ParseInLocation("2006-01-02", ref, c.Location())
	if err != nil {
		return now
	}

	return t
}

// NormalizedCityAliases returns the alias table keyed by normalized alias,
// the form the venue-line parser matches against.
func (c *Config) NormalizedCityAliases() map[string]string {
	out := make(map[string]string, len(c.Corrections.CityAliases))
	for alias, canonical := range c.Corrections.CityAliases {
		out[textnorm.NormalizeName(alias)] = canonical
	}

	return out
}
