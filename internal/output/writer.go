package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"showlist/internal/logger"
	"showlist/internal/models"
)

// Writer persists a pipeline result as the on-disk dataset.
type Writer struct {
	baseDir string
	pretty  bool
	log     *logger.Logger
}

// NewWriter creates a writer targeting baseDir.
func NewWriter(baseDir string, pretty bool, log *logger.Logger) *Writer {
	return &Writer{baseDir: baseDir, pretty: pretty, log: log}
}

// Write emits every artifact plus the manifest, returning the manifest.
// Failures here are infrastructural and abort the run.
func (w *Writer) Write(result *models.Result) (*Manifest, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	for _, chunk := range result.Chunks {
		name := fmt.Sprintf("events-%s.json", chunk.ChunkID)
		if err := w.writeArtifact(manifest, name, chunk, len(chunk.Events)); err != nil {
			return nil, err
		}
	}

	if err := w.writeArtifact(manifest, "artists.json", result.Artists, len(result.Artists)); err != nil {
		return nil, err
	}

	if err := w.writeArtifact(manifest, "venues.json", result.Venues, len(result.Venues)); err != nil {
		return nil, err
	}

	if err := w.writeArtifact(manifest, "indexes.json", result.Indexes, len(result.Indexes.SearchTerms)); err != nil {
		return nil, err
	}

	manifest.DatasetVersion = datasetVersion(manifest.Files)

	data, err := w.marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(w.baseDir, ManifestName), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	w.log.Info("dataset written", "dir", w.baseDir, "files", len(manifest.Files)+1, "version", manifest.DatasetVersion[:12])

	return manifest, nil
}

func (w *Writer) writeArtifact(manifest *Manifest, name string, payload any, records int) error {
	data, err := w.marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(w.baseDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	w.log.Debug("artifact written", "name", name, "bytes", len(data), "records", records)

	manifest.Files = append(manifest.Files, ManifestFile{
		Name:    name,
		Bytes:   len(data),
		SHA256:  Checksum(data),
		Records: records,
	})

	return nil
}

func (w *Writer) marshal(payload any) ([]byte, error) {
	if w.pretty {
		return json.MarshalIndent(payload, "", "  ")
	}

	return json.Marshal(payload)
}
