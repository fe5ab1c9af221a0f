// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package combine

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdf-combiner/pkg/types"
)

// PDFCPU is the Backend backed by the pdfcpu library.
type PDFCPU struct {
	conf *model.Configuration
}

// NewPDFCPU returns a pdfcpu backend. Relaxed selects pdfcpu's relaxed
// validation, which accepts the minor spec violations common in scanner
// and office-suite output.
func NewPDFCPU(relaxed bool) *PDFCPU {
	conf := model.NewDefaultConfiguration()
	if relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	} else {
		conf.ValidationMode = model.ValidationStrict
	}
	// Bookmarks are written by the engine with their own titles.
	conf.CreateBookmarks = false
	return &PDFCPU{conf: conf}
}

// PageCount opens path, reads its page tree, and closes it again.
func (p *PDFCPU) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, p.conf)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}

// Merge concatenates the pages of inputs, in order, into output.
func (p *PDFCPU) Merge(inputs []string, output string) error {
	if err := api.MergeCreateFile(inputs, output, false, p.conf); err != nil {
		return fmt.Errorf("pdfcpu merge: %w", err)
	}
	return nil
}

// SetBookmarks writes input to output with bms as its only outline entries.
func (p *PDFCPU) SetBookmarks(input, output string, bms []types.Bookmark) error {
	outline := make([]pdfcpu.Bookmark, len(bms))
	for i, b := range bms {
		outline[i] = pdfcpu.Bookmark{
			Title:    b.Title,
			PageFrom: b.PageNumber(),
		}
	}
	if err := api.AddBookmarksFile(input, output, outline, true, p.conf); err != nil {
		return fmt.Errorf("pdfcpu bookmarks: %w", err)
	}
	return nil
}

// Bookmarks returns the top-level outline entries of the PDF at path.
func (p *PDFCPU) Bookmarks(path string) ([]types.Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	outline, err := api.Bookmarks(f, p.conf)
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks of %s: %w", path, err)
	}
	bms := make([]types.Bookmark, len(outline))
	for i, b := range outline {
		bms[i] = types.Bookmark{Title: b.Title, PageIndex: b.PageFrom - 1}
	}
	return bms, nil
}
