// Package main provides the worker command that runs the full ingestion
// pipeline: extract, normalize, index, and write the dataset.
package main

import (
	"flag"
	"fmt"
	"os"

	"showlist/internal/config"
	"showlist/internal/formatter"
	"showlist/internal/logger"
	"showlist/internal/pipeline"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	configPath := flag.String("config", "configs/pipeline.yaml", "Path to pipeline configuration")
	eventsPath := flag.String("events", "", "Events source file (overrides config)")
	venuesPath := flag.String("venues", "", "Venue details file (overrides config)")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	strict := flag.Bool("strict", false, "Exit non-zero when any record-level error was recorded")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *eventsPath != "" {
		cfg.Pipeline.Sources.Events = *eventsPath
	}

	if *venuesPath != "" {
		cfg.Pipeline.Sources.Venues = *venuesPath
	}

	if *outputDir != "" {
		cfg.Pipeline.Output.BasePath = *outputDir
	}

	// Initialize Logger
	log := logger.NewLogger(cfg.Pipeline.Logging.Level)

	if cfg.Pipeline.Sources.Events == "" {
		log.Error("No events source configured; set pipeline.sources.events or pass -events")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Info("🚀 Starting showlist ingestion")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Pipeline.Sources.Events))
	log.Info(fmt.Sprintf("🎯 Output: %s", cfg.Pipeline.Output.BasePath))

	// 2. Run the Pipeline
	// -------------------
	runner := pipeline.NewRunner(cfg, log)

	result, manifest, err := runner.Run()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Pipeline failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Emitted %d events across %d chunks in %v",
		result.Stats.EventsEmitted, result.Stats.ChunkCount, result.Stats.Duration))

	// 3. Final Report
	// ---------------
	log.Info("✨ Pipeline Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Print(formatter.Summary(result, manifest))

	if diag := formatter.Diagnostics(result, cfg.Pipeline.Logging.SampleDiagnostics); diag != "" {
		fmt.Println("------------------------------------------------")
		fmt.Print(diag)
	}

	fmt.Println("------------------------------------------------")

	if *strict && result.Stats.ErrorCount > 0 {
		log.Error(fmt.Sprintf("❌ %d record-level errors (strict mode)", result.Stats.ErrorCount))
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to the built-in defaults when
// the default path does not exist. An explicit but unreadable path is an error.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !flagWasSet("config") {
		return config.Default(), nil
	}

	return config.Load(path)
}

func flagWasSet(name string) bool {
	set := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}
