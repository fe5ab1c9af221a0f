// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records shared between discovery, the merge engine,
// and the front ends.
package types

import (
	"path/filepath"
	"strings"
)

// DefaultOutputName is the output filename used when none is given.
const DefaultOutputName = "combined_pdfs.pdf"

// TempPrefix starts the name of every scratch file written next to an
// output. Discovery ignores files with this prefix.
const TempPrefix = ".pdf-combiner-"

// SourceFile is a PDF found during discovery. It is never modified after
// discovery; page counts are read by the merge engine when needed.
type SourceFile struct {
	// Path is the filesystem path of the PDF.
	Path string `json:"path" yaml:"path"`

	// RelPath is Path relative to the discovery root, with OS separators.
	RelPath string `json:"rel_path" yaml:"rel_path"`

	// Name is the base name of the file (e.g. "10.pdf").
	Name string `json:"name" yaml:"name"`
}

// NewSourceFile builds a SourceFile for path discovered under root.
func NewSourceFile(root, path string) SourceFile {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Clean(path)
	}
	return SourceFile{
		Path:    path,
		RelPath: rel,
		Name:    filepath.Base(path),
	}
}

// Title returns the bookmark title for the file: its base name without a
// trailing ".pdf", compared case-insensitively.
func (s SourceFile) Title() string {
	name := s.Name
	if name == "" {
		name = filepath.Base(s.Path)
	}
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".pdf") {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// MergePlan is the ordered input of a single merge run.
type MergePlan struct {
	Sources []SourceFile `json:"sources" yaml:"sources"`
	Output  string       `json:"output" yaml:"output"`
}

// Bookmark is an outline entry in the merged document.
type Bookmark struct {
	// Title is the label shown in the reader's outline pane.
	Title string `json:"title" yaml:"title"`

	// PageIndex is the 0-based index of the first page the bookmark targets.
	PageIndex int `json:"page_index" yaml:"page_index"`
}

// PageNumber returns the 1-based page number of the bookmark target.
func (b Bookmark) PageNumber() int {
	return b.PageIndex + 1
}

// CombineConfig holds the settings for one run of either front end.
type CombineConfig struct {
	// Folder is the directory scanned for PDFs.
	Folder string `json:"folder" yaml:"folder"`

	// Output is the output filename or path. Relative names resolve
	// inside Folder.
	Output string `json:"output" yaml:"output"`

	// Recursive includes PDFs in subfolders of Folder.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// AssumeYes answers every confirmation prompt with yes.
	AssumeYes bool `json:"assume_yes" yaml:"assume_yes"`

	// Relaxed selects pdfcpu's relaxed validation mode.
	Relaxed bool `json:"relaxed" yaml:"relaxed"`

	// Manifest is an optional path for a YAML or JSON run manifest.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// OutputPath resolves Output against Folder. An empty Output falls back to
// DefaultOutputName and a missing ".pdf" extension is appended.
func (c CombineConfig) OutputPath() string {
	name := strings.TrimSpace(c.Output)
	if name == "" {
		name = DefaultOutputName
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Folder, name)
}
