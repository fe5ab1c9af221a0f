// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-combiner/internal/combine"
	"github.com/pdiddy/pdf-combiner/internal/logging"
	"github.com/pdiddy/pdf-combiner/internal/pdftest"
	"github.com/pdiddy/pdf-combiner/pkg/types"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

func setup(t *testing.T) (*httptest.Server, string, *combine.PDFCPU) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, pdftest.Write(filepath.Join(dir, "1.pdf"), 1))
	require.NoError(t, pdftest.Write(filepath.Join(dir, "2.pdf"), 2))
	require.NoError(t, pdftest.Write(filepath.Join(dir, "sub", "3.pdf"), 1))
	require.NoError(t, pdftest.WriteCorrupt(filepath.Join(dir, "broken.pdf")))

	backend := combine.NewPDFCPU(true)
	srv := httptest.NewServer(New(combine.New(backend), logging.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv, dir, backend
}

func get(t *testing.T, rawURL string) (int, string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func post(t *testing.T, rawURL string, form url.Values) (int, string) {
	t.Helper()
	resp, err := http.PostForm(rawURL, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestIndex(t *testing.T) {
	srv, dir, _ := setup(t)

	t.Run("empty form", func(t *testing.T) {
		code, body := get(t, srv.URL+"/")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Scan for PDFs")
		assert.NotContains(t, body, "Combine PDFs")
	})

	t.Run("scan top level", func(t *testing.T) {
		code, body := get(t, srv.URL+"/?"+url.Values{"folder": {dir}}.Encode())
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Found 3 PDF files, 3 pages.")
		assert.Contains(t, body, `value="2.pdf" checked`)
		assert.Contains(t, body, `value="broken.pdf" disabled`)
		assert.NotContains(t, body, "3.pdf")
	})

	t.Run("scan recursive", func(t *testing.T) {
		code, body := get(t, srv.URL+"/?"+url.Values{"folder": {dir}, "recursive": {"on"}}.Encode())
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Found 4 PDF files, 4 pages.")
	})

	t.Run("missing folder", func(t *testing.T) {
		_, body := get(t, srv.URL+"/?"+url.Values{"folder": {filepath.Join(dir, "nope")}}.Encode())
		assert.Contains(t, body, "folder does not exist")
	})
}

func TestMerge(t *testing.T) {
	srv, dir, backend := setup(t)

	code, body := post(t, srv.URL+"/merge", url.Values{
		"folder":    {dir},
		"recursive": {"on"},
		"output":    {"book"},
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, "with 3 bookmarks and 4 pages")
	assert.Contains(t, body, "skipped broken.pdf")

	out := filepath.Join(dir, "book.pdf")
	bms, err := backend.Bookmarks(out)
	require.NoError(t, err)
	assert.Equal(t, []types.Bookmark{
		{Title: "1", PageIndex: 0},
		{Title: "2", PageIndex: 1},
		{Title: "3", PageIndex: 3},
	}, bms)

	t.Run("existing output needs overwrite", func(t *testing.T) {
		code, body := post(t, srv.URL+"/merge", url.Values{"folder": {dir}, "output": {"book.pdf"}})
		assert.Equal(t, http.StatusConflict, code)
		assert.Contains(t, body, "already exists")

		code, _ = post(t, srv.URL+"/merge", url.Values{
			"folder":    {dir},
			"output":    {"book.pdf"},
			"overwrite": {"on"},
		})
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("selected files only", func(t *testing.T) {
		code, body := post(t, srv.URL+"/merge", url.Values{
			"folder": {dir},
			"output": {"pick.pdf"},
			"file":   {"2.pdf"},
		})
		require.Equal(t, http.StatusOK, code, body)
		bms, err := backend.Bookmarks(filepath.Join(dir, "pick.pdf"))
		require.NoError(t, err)
		assert.Equal(t, []types.Bookmark{{Title: "2", PageIndex: 0}}, bms)
	})

	t.Run("missing folder", func(t *testing.T) {
		code, _ := post(t, srv.URL+"/merge", url.Values{"folder": {filepath.Join(dir, "nope")}})
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestDownload(t *testing.T) {
	srv, dir, _ := setup(t)
	download := func(name string) string {
		return srv.URL + "/download?" + url.Values{"folder": {dir}, "name": {name}}.Encode()
	}

	code, _ := get(t, download("1.pdf"))
	assert.Equal(t, http.StatusNotFound, code, "inputs are not served")

	code, body := post(t, srv.URL+"/merge", url.Values{"folder": {dir}, "output": {"book.pdf"}})
	require.Equal(t, http.StatusOK, code, body)

	resp, err := http.Get(download("book.pdf"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	tests := []struct {
		name string
		file string
		want int
	}{
		{"traversal", "../book.pdf", http.StatusBadRequest},
		{"not a pdf", "notes.txt", http.StatusBadRequest},
		{"missing", "nope.pdf", http.StatusNotFound},
		{"not written here", "2.pdf", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := get(t, download(tt.file))
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestMerge_CrossOrigin(t *testing.T) {
	srv, dir, _ := setup(t)
	form := url.Values{"folder": {dir}, "output": {"other.pdf"}}

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"foreign origin", "Origin", "https://elsewhere.example", http.StatusForbidden},
		{"cross-site fetch", "Sec-Fetch-Site", "cross-site", http.StatusForbidden},
		{"same origin", "Origin", srv.URL, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "other.pdf")
			_ = os.Remove(out)

			req, err := http.NewRequest(http.MethodPost, srv.URL+"/merge", strings.NewReader(form.Encode()))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set(tt.header, tt.value)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusForbidden {
				assert.NoFileExists(t, out)
			} else {
				assert.FileExists(t, out)
			}
		})
	}
}
