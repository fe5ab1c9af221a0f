// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package combine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-combiner/pkg/types"
)

func sampleResult() Result {
	root := "/in"
	return Result{
		Output:     "/in/combined_pdfs.pdf",
		TotalPages: 5,
		Merged: []Contribution{
			{Source: types.NewSourceFile(root, "/in/1.pdf"), Pages: 2, Bookmark: types.Bookmark{Title: "1", PageIndex: 0}},
			{Source: types.NewSourceFile(root, "/in/2.pdf"), Pages: 3, Bookmark: types.Bookmark{Title: "2", PageIndex: 2}},
		},
		Skipped: []Skip{
			{Source: types.NewSourceFile(root, "/in/bad.pdf"), Err: errors.New("corrupt")},
		},
	}
}

func TestWriteManifest(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"yaml", "manifest.yaml", "total_pages: 5"},
		{"json", "manifest.json", `"total_pages": 5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, WriteManifest(path, sampleResult()))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)

			m, err := ReadManifest(path)
			require.NoError(t, err)
			assert.Equal(t, "/in/combined_pdfs.pdf", m.Output)
			require.Len(t, m.Files, 2)
			assert.Equal(t, ManifestFile{Path: "2.pdf", Title: "2", Pages: 3, Page: 3}, m.Files[1])
			require.Len(t, m.Skipped, 1)
			assert.Equal(t, "corrupt", m.Skipped[0].Error)
		})
	}
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
