// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small, valid PDF documents for tests and demos.
// Each page carries a single line of Helvetica text so a viewer shows
// which source file it came from.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Letter page size in points.
const (
	pageWidth  = 612
	pageHeight = 792
)

// Build returns the bytes of a PDF with the given number of pages. Page i
// shows "<label> - page i". A page count below one yields a one-page document.
func Build(label string, pages int) []byte {
	if pages < 1 {
		pages = 1
	}

	// Object layout: 1 catalog, 2 pages tree, 3 font, then a page object
	// and a content stream per page.
	var objects []string
	kids := make([]string, pages)
	for i := 0; i < pages; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i := 0; i < pages; i++ {
		pageObj := 4 + 2*i
		text := fmt.Sprintf("BT /F1 24 Tf 72 700 Td (%s - page %d) Tj ET", escape(label), i+1)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
				pageWidth, pageHeight, pageObj+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(text), text),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Write creates a PDF at path with the given number of pages, creating
// parent directories as needed. The label is the file's base name.
func Write(path string, pages int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return os.WriteFile(path, Build(label, pages), 0o644)
}

// WriteCorrupt creates a file at path that has a PDF name but no valid
// PDF structure.
func WriteCorrupt(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, []byte("%PDF-1.4\nthis is not a pdf body\n"), 0o644)
}

// escape quotes the characters that are special inside a PDF literal string.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
