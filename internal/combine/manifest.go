// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package combine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest records what a merge run produced.
type Manifest struct {
	Output     string         `json:"output" yaml:"output"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	Files      []ManifestFile `json:"files" yaml:"files"`
	Skipped    []ManifestSkip `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// ManifestFile is a merged source file and its bookmark.
type ManifestFile struct {
	Path  string `json:"path" yaml:"path"`
	Title string `json:"title" yaml:"title"`
	Pages int    `json:"pages" yaml:"pages"`
	Page  int    `json:"page" yaml:"page"`
}

// ManifestSkip is a source file left out of the merge.
type ManifestSkip struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// NewManifest summarizes r. Page numbers in the manifest are 1-based, as a
// reader shows them.
func NewManifest(r Result) Manifest {
	m := Manifest{
		Output:     r.Output,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		TotalPages: r.TotalPages,
		Files:      make([]ManifestFile, len(r.Merged)),
	}
	for i, c := range r.Merged {
		m.Files[i] = ManifestFile{
			Path:  c.Source.RelPath,
			Title: c.Bookmark.Title,
			Pages: c.Pages,
			Page:  c.Bookmark.PageNumber(),
		}
	}
	for _, s := range r.Skipped {
		m.Skipped = append(m.Skipped, ManifestSkip{Path: s.Source.RelPath, Error: s.Err.Error()})
	}
	return m
}

// WriteManifest writes the manifest of r to path, as JSON when path ends in
// ".json" and as YAML otherwise.
func WriteManifest(path string, r Result) error {
	m := NewManifest(r)

	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if isJSON(path) {
		err = json.Unmarshal(data, &m)
	} else {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
