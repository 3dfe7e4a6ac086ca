// Package output writes the dataset artifacts consumed by the external
// data-loading layer: one JSON file per month chunk, the entity arrays, the
// index tables, and a checksummed manifest describing them all.
package output

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ManifestName is the fixed name of the manifest file within an output dir.
const ManifestName = "manifest.json"

// Manifest verification errors.
var (
	ErrNoManifest   = errors.New("no manifest found")
	ErrFileMissing  = errors.New("file listed in manifest is missing")
	ErrHashMismatch = errors.New("checksum mismatch")
	ErrSizeMismatch = errors.New("size mismatch")
)

// Manifest describes one emitted dataset version.
type Manifest struct {
	// DatasetVersion is derived from the per-file checksums, so identical
	// content always yields the same version string.
	DatasetVersion string         `json:"datasetVersion"`
	RunID          string         `json:"runId"`
	GeneratedAt    time.Time      `json:"generatedAt"`
	Files          []ManifestFile `json:"files"`
}

// ManifestFile records one artifact's integrity data.
type ManifestFile struct {
	Name    string `json:"name"`
	Bytes   int    `json:"bytes"`
	SHA256  string `json:"sha256"`
	Records int    `json:"records"`
}

// Checksum computes the hex sha256 of artifact bytes.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// datasetVersion folds the sorted per-file checksums into one version hash.
func datasetVersion(files []ManifestFile) string {
	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, f.Name+":"+f.SHA256)
	}

	sort.Strings(lines)

	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// VerifyDir recomputes every checksum in a directory's manifest and returns a
// description of each mismatch. An empty slice means the dataset is intact.
func VerifyDir(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoManifest, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	var problems []string

	for _, f := range manifest.Files {
		content, err := os.ReadFile(filepath.Join(dir, f.Name))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", f.Name, ErrFileMissing))

			continue
		}

		if len(content) != f.Bytes {
			problems = append(problems, fmt.Sprintf("%s: %v (manifest %d, disk %d)",
				f.Name, ErrSizeMismatch, f.Bytes, len(content)))
		}

		if sum := Checksum(content); sum != f.SHA256 {
			problems = append(problems, fmt.Sprintf("%s: %v", f.Name, ErrHashMismatch))
		}
	}

	return problems, nil
}
