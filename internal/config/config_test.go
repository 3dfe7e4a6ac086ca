package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
pipeline:
  sources:
    events: "data/shows.txt"
    venues: "data/venues.txt"
  output:
    base_path: "dist/data"
    pretty_print: true
  calendar:
    default_year: 2025
    timezone: "America/Los_Angeles"
    reference_date: "2025-08-01"
  logging:
    level: "debug"
    sample_diagnostics: 5
  validation:
    max_artists_per_record: 6
corrections:
  artist_fixes:
    "JackieHayesDehd":
      - "Jackie Hayes"
      - "Dehd"
  city_aliases:
    "wc": "Walnut Creek"
venues:
  major:
    - "Fox Theater"
  capacities:
    "Fox Theater": 2800
`

func TestLoad_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Pipeline.Sources.Events != "data/shows.txt" {
		t.Errorf("Events source = %q", cfg.Pipeline.Sources.Events)
	}

	if cfg.Pipeline.Calendar.DefaultYear != 2025 {
		t.Errorf("DefaultYear = %d, want 2025", cfg.Pipeline.Calendar.DefaultYear)
	}

	if cfg.Pipeline.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Pipeline.Logging.Level)
	}

	if got := cfg.Corrections.ArtistFixes["JackieHayesDehd"]; len(got) != 2 {
		t.Errorf("ArtistFixes = %v", got)
	}

	// File values layer over the built-in tables rather than replacing them
	// wholesale: the alias file adds "wc", the defaults still carry "sf".
	if cfg.Corrections.CityAliases["wc"] != "Walnut Creek" {
		t.Errorf("CityAliases missing file entry: %v", cfg.Corrections.CityAliases)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "pipeline: [}")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default configuration must validate: %v", err)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "Missing events source",
			mutate:  func(c *Config) { c.Pipeline.Sources.Events = "" },
			wantErr: ErrMissingEventsSource,
		},
		{
			name:    "Missing output path",
			mutate:  func(c *Config) { c.Pipeline.Output.BasePath = "" },
			wantErr: ErrMissingOutputPath,
		},
		{
			name:    "Bad year",
			mutate:  func(c *Config) { c.Pipeline.Calendar.DefaultYear = 99 },
			wantErr: ErrInvalidYear,
		},
		{
			name:    "Bad timezone",
			mutate:  func(c *Config) { c.Pipeline.Calendar.Timezone = "Mars/Olympus" },
			wantErr: ErrInvalidTimezone,
		},
		{
			name:    "Bad reference date",
			mutate:  func(c *Config) { c.Pipeline.Calendar.ReferenceDate = "15-08-2025" },
			wantErr: ErrInvalidReference,
		},
		{
			name:    "Bad log level",
			mutate:  func(c *Config) { c.Pipeline.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "Negative sample count",
			mutate:  func(c *Config) { c.Pipeline.Logging.SampleDiagnostics = -1 },
			wantErr: ErrInvalidSampleCount,
		},
		{
			name:    "Zero max artists",
			mutate:  func(c *Config) { c.Pipeline.Validation.MaxArtistsPerRecord = 0 },
			wantErr: ErrInvalidMaxArtists,
		},
		{
			name: "Empty fix replacement",
			mutate: func(c *Config) {
				c.Corrections.ArtistFixes = map[string][]string{"Bad": {}}
			},
			wantErr: ErrEmptyFixReplacement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := Default()

	if cfg.Location() != time.UTC {
		t.Errorf("Default location = %v, want UTC", cfg.Location())
	}

	cfg.Pipeline.Calendar.Timezone = "America/Los_Angeles"
	if cfg.Location().String() != "America/Los_Angeles" {
		t.Errorf("Location = %v", cfg.Location())
	}
}

func TestConfig_Year(t *testing.T) {
	cfg := Default()
	now := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	if got := cfg.Year(now); got != 2025 {
		t.Errorf("Wall-clock year = %d, want 2025", got)
	}

	cfg.Pipeline.Calendar.DefaultYear = 2024
	if got := cfg.Year(now); got != 2024 {
		t.Errorf("Configured year = %d, want 2024", got)
	}
}

func TestConfig_ReferenceTime(t *testing.T) {
	cfg := Default()
	now := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)

	if got := cfg.ReferenceTime(now); !got.Equal(now) {
		t.Errorf("Empty reference should be now, got %v", got)
	}

	cfg.Pipeline.Calendar.ReferenceDate = "2025-09-01"

	got := cfg.ReferenceTime(now)
	if got.Year() != 2025 || got.Month() != time.September || got.Day() != 1 {
		t.Errorf("ReferenceTime = %v, want 2025-09-01", got)
	}
}

func TestConfig_NormalizedCityAliases(t *testing.T) {
	cfg := Default()
	cfg.Corrections.CityAliases = map[string]string{"S.F.": "San Francisco"}

	aliases := cfg.NormalizedCityAliases()
	if aliases["s f"] != "San Francisco" {
		t.Errorf("Aliases not normalized: %v", aliases)
	}
}
