// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package combine merges an ordered list of PDFs into one document with a
// bookmark at the first page of every source file.
package combine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf-combiner/pkg/types"
)

var (
	// ErrNothingMerged is returned when every source file was skipped.
	ErrNothingMerged = errors.New("no PDF files could be merged")

	// ErrWrite is returned when the output document cannot be written.
	ErrWrite = errors.New("writing output")
)

// Backend performs the PDF operations the engine needs. PDFCPU is the
// production implementation.
type Backend interface {
	// PageCount returns the number of pages of the PDF at path.
	PageCount(path string) (int, error)

	// Merge writes the pages of inputs, in order, to output.
	Merge(inputs []string, output string) error

	// SetBookmarks copies input to output, replacing its outline with bms.
	SetBookmarks(input, output string, bms []types.Bookmark) error

	// Bookmarks returns the top-level outline entries of the PDF at path.
	Bookmarks(path string) ([]types.Bookmark, error)
}

// Inspection is the outcome of reading one source file's page count.
type Inspection struct {
	Source types.SourceFile
	Pages  int
	Err    error
}

// OK reports whether the file can contribute pages to the merge.
func (i Inspection) OK() bool {
	return i.Err == nil && i.Pages > 0
}

// Contribution is a source file that made it into the merged document.
type Contribution struct {
	Source   types.SourceFile
	Pages    int
	Bookmark types.Bookmark
}

// Skip is a source file left out of the merge.
type Skip struct {
	Source types.SourceFile
	Err    error
}

// Result holds the outcome of a merge.
type Result struct {
	Output     string
	Merged     []Contribution
	Skipped    []Skip
	TotalPages int
}

// Bookmarks returns the outline entries written to the output.
func (r Result) Bookmarks() []types.Bookmark {
	bms := make([]types.Bookmark, len(r.Merged))
	for i, c := range r.Merged {
		bms[i] = c.Bookmark
	}
	return bms
}

// HasWarnings reports whether any source file was skipped.
func (r Result) HasWarnings() bool {
	return len(r.Skipped) > 0
}

// errEmptyDocument marks a readable PDF without pages.
var errEmptyDocument = errors.New("document has no pages")

// Engine runs merges against a Backend.
type Engine struct {
	backend  Backend
	log      zerolog.Logger
	status   io.Writer
	progress func(types.SourceFile)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithStatus sets the writer for human-readable per-file status lines.
func WithStatus(w io.Writer) Option {
	return func(e *Engine) { e.status = w }
}

// WithProgress registers a callback invoked after each file is inspected.
func WithProgress(fn func(types.SourceFile)) Option {
	return func(e *Engine) { e.progress = fn }
}

// New creates an engine using backend for all PDF work.
func New(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		log:     zerolog.Nop(),
		status:  io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Inspect reads the page count of each source in order. Unreadable files are
// reported in the returned inspections rather than as an error; only context
// cancellation aborts the scan.
func (e *Engine) Inspect(ctx context.Context, sources []types.SourceFile) ([]Inspection, error) {
	out := make([]Inspection, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := e.backend.PageCount(src.Path)
		if err == nil && n == 0 {
			err = errEmptyDocument
		}
		if err != nil {
			e.log.Debug().Err(err).Str("file", src.Path).Msg("inspection failed")
		}
		out = append(out, Inspection{Source: src, Pages: n, Err: err})
		if e.progress != nil {
			e.progress(src)
		}
	}
	return out, nil
}

// Combine inspects the plan's sources and merges the readable ones into
// plan.Output.
func (e *Engine) Combine(ctx context.Context, plan types.MergePlan) (Result, error) {
	inspected, err := e.Inspect(ctx, plan.Sources)
	if err != nil {
		return Result{Output: plan.Output}, err
	}
	return e.Merge(ctx, inspected, plan.Output)
}

// Merge writes the readable files among inspected to output, with one
// bookmark per file. Files that failed inspection are skipped with a warning.
// The output is written to a temporary file first and renamed into place,
// so a failed run never leaves a partial document behind.
func (e *Engine) Merge(ctx context.Context, inspected []Inspection, output string) (Result, error) {
	merged, skipped := Plan(inspected)
	result := Result{Output: output, Merged: merged, Skipped: skipped}

	for _, s := range skipped {
		fmt.Fprintf(e.status, "skipped: %s (%v)\n", s.Source.RelPath, s.Err)
		e.log.Warn().Err(s.Err).Str("file", s.Source.Path).Msg("skipping unreadable PDF")
	}
	if len(merged) == 0 {
		return result, ErrNothingMerged
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	for _, c := range merged {
		result.TotalPages += c.Pages
		fmt.Fprintf(e.status, "added:   %s (%d pages, bookmark %q at page %d)\n",
			c.Source.RelPath, c.Pages, c.Bookmark.Title, c.Bookmark.PageNumber())
	}

	if err := e.write(merged, output); err != nil {
		return result, err
	}

	e.log.Info().
		Str("output", output).
		Int("files", len(merged)).
		Int("skipped", len(skipped)).
		Int("pages", result.TotalPages).
		Msg("merge complete")
	fmt.Fprintf(e.status, "\nMerge summary: %d merged, %d skipped, %d pages -> %s\n",
		len(merged), len(skipped), result.TotalPages, output)
	return result, nil
}

// Plan splits inspections into contributions and skips and assigns each
// contribution its bookmark. Bookmark page indices are the running sum of
// the page counts before it, so they are strictly increasing.
func Plan(inspected []Inspection) ([]Contribution, []Skip) {
	var merged []Contribution
	var skipped []Skip
	offset := 0
	for _, in := range inspected {
		if !in.OK() {
			err := in.Err
			if err == nil {
				err = errEmptyDocument
			}
			skipped = append(skipped, Skip{Source: in.Source, Err: err})
			continue
		}
		merged = append(merged, Contribution{
			Source: in.Source,
			Pages:  in.Pages,
			Bookmark: types.Bookmark{
				Title:     in.Source.Title(),
				PageIndex: offset,
			},
		})
		offset += in.Pages
	}
	return merged, skipped
}

func (e *Engine) write(merged []Contribution, output string) error {
	dir := filepath.Dir(output)

	final, err := tempPath(dir, "final")
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, output, err)
	}
	defer os.Remove(final)

	bms := make([]types.Bookmark, len(merged))
	for i, c := range merged {
		bms[i] = c.Bookmark
	}

	src := merged[0].Source.Path
	if len(merged) > 1 {
		inputs := make([]string, len(merged))
		for i, c := range merged {
			inputs[i] = c.Source.Path
		}
		joined, err := tempPath(dir, "merge")
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrWrite, output, err)
		}
		defer os.Remove(joined)

		if err := e.backend.Merge(inputs, joined); err != nil {
			return fmt.Errorf("%w %s: merging %d files: %w", ErrWrite, output, len(inputs), err)
		}
		src = joined
	}

	if err := e.backend.SetBookmarks(src, final, bms); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, output, err)
	}
	if err := os.Rename(final, output); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, output, err)
	}
	return nil
}

// tempPath reserves a unique file name in dir and returns it closed.
func tempPath(dir, kind string) (string, error) {
	f, err := os.CreateTemp(dir, types.TempPrefix+kind+"-*.pdf")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
