// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftest

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_XrefOffsets(t *testing.T) {
	data := Build("chapter (1)", 3)

	require.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4\n")))
	require.True(t, bytes.HasSuffix(data, []byte("%%EOF\n")))

	// startxref must point at the xref keyword.
	idx := bytes.LastIndex(data, []byte("startxref\n"))
	require.Greater(t, idx, 0)
	rest := strings.SplitN(string(data[idx+len("startxref\n"):]), "\n", 2)
	off, err := strconv.Atoi(rest[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data[off:], []byte("xref\n")))

	// Every in-use xref entry must point at its object header.
	lines := strings.Split(string(data[off:]), "\n")
	for i, line := range lines[3:] {
		if !strings.HasSuffix(line, " n ") {
			break
		}
		objOff, err := strconv.Atoi(line[:10])
		require.NoError(t, err)
		header := strconv.Itoa(i+1) + " 0 obj"
		assert.True(t, bytes.HasPrefix(data[objOff:], []byte(header)), "object %d", i+1)
	}

	assert.Contains(t, string(data), "/Count 3")
	assert.Contains(t, string(data), `chapter \(1\) - page 3`)
}

func TestBuild_MinimumOnePage(t *testing.T) {
	assert.Contains(t, string(Build("x", 0)), "/Count 1")
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "2.pdf")
	require.NoError(t, Write(path, 2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(2 - page 2)")
}

func TestWriteCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, WriteCorrupt(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "xref")
}
