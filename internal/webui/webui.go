// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webui serves the graphical front end: a local web page to pick a
// folder, review the PDFs found there, and combine them.
package webui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf-combiner/internal/combine"
	"github.com/pdiddy/pdf-combiner/internal/discover"
	"github.com/pdiddy/pdf-combiner/pkg/types"
)

const shutdownTimeout = 5 * time.Second

// Server is the web front end. Every request builds its own merge plan; the
// only state kept between requests is the set of outputs written, which
// bounds what /download serves.
type Server struct {
	engine  *combine.Engine
	log     zerolog.Logger
	handler http.Handler

	mu      sync.Mutex
	written map[string]bool
}

// New creates a server that merges with engine. State-changing requests from
// other origins are rejected with 403.
func New(engine *combine.Engine, log zerolog.Logger) *Server {
	s := &Server{engine: engine, log: log, written: make(map[string]bool)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /merge", s.handleMerge)
	mux.HandleFunc("GET /download", s.handleDownload)
	s.handler = http.NewCrossOriginProtection().Handler(mux)
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("web UI listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// fileRow is one discovered PDF in the listing.
type fileRow struct {
	RelPath string
	Path    string
	Pages   int
	OK      bool
	Problem string
}

// resultView summarizes a finished merge.
type resultView struct {
	Output   string
	Download string
	Files    int
	Pages    int
	Skipped  []string
}

type pageData struct {
	Folder     string
	Recursive  bool
	Output     string
	Error      string
	Files      []fileRow
	TotalPages int
	Result     *resultView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Folder:    q.Get("folder"),
		Recursive: q.Get("recursive") != "",
		Output:    types.DefaultOutputName,
	}
	if data.Folder != "" {
		s.scan(r.Context(), &data)
	}
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	cfg := types.CombineConfig{
		Folder:    r.PostForm.Get("folder"),
		Output:    r.PostForm.Get("output"),
		Recursive: r.PostForm.Get("recursive") != "",
	}
	data := pageData{Folder: cfg.Folder, Recursive: cfg.Recursive, Output: cfg.Output}
	out := cfg.OutputPath()

	srcs, err := discover.Find(cfg.Folder, discover.Options{Recursive: cfg.Recursive, Exclude: []string{out}})
	if err != nil {
		data.Error = err.Error()
		s.render(w, http.StatusBadRequest, data)
		return
	}
	srcs = selected(srcs, r.PostForm["file"])
	if len(srcs) == 0 {
		data.Error = "select at least one PDF file"
		s.scan(r.Context(), &data)
		s.render(w, http.StatusBadRequest, data)
		return
	}

	if _, err := os.Stat(out); err == nil && r.PostForm.Get("overwrite") == "" {
		data.Error = fmt.Sprintf("%s already exists; tick overwrite to replace it", filepath.Base(out))
		s.scan(r.Context(), &data)
		s.render(w, http.StatusConflict, data)
		return
	}

	res, err := s.engine.Combine(r.Context(), types.MergePlan{Sources: srcs, Output: out})
	if err != nil {
		s.log.Error().Err(err).Str("folder", cfg.Folder).Msg("merge failed")
		data.Error = err.Error()
		s.render(w, http.StatusInternalServerError, data)
		return
	}

	s.remember(out)

	view := &resultView{
		Output:   out,
		Download: "/download?" + url.Values{"folder": {cfg.Folder}, "name": {filepath.Base(out)}}.Encode(),
		Files:    len(res.Merged),
		Pages:    res.TotalPages,
	}
	for _, sk := range res.Skipped {
		view.Skipped = append(view.Skipped, fmt.Sprintf("%s: %v", sk.Source.RelPath, sk.Err))
	}
	data.Result = view
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	name := r.URL.Query().Get("name")
	if folder == "" || name == "" || name != filepath.Base(name) || !discover.IsPDF(name) {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	path := filepath.Join(folder, name)
	if !s.wrote(path) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	http.ServeFile(w, r, path)
}

// remember records path as an output of this server.
func (s *Server) remember(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[absPath(path)] = true
}

func (s *Server) wrote(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written[absPath(path)]
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// scan fills data with the PDFs in data.Folder and their page counts.
func (s *Server) scan(ctx context.Context, data *pageData) {
	cfg := types.CombineConfig{Folder: data.Folder, Output: data.Output}
	srcs, err := discover.Find(data.Folder, discover.Options{
		Recursive: data.Recursive,
		Exclude:   []string{cfg.OutputPath()},
	})
	if err != nil {
		if data.Error == "" {
			data.Error = err.Error()
		}
		return
	}
	inspected, err := s.engine.Inspect(ctx, srcs)
	if err != nil {
		data.Error = err.Error()
		return
	}
	data.Files = data.Files[:0]
	data.TotalPages = 0
	for _, in := range inspected {
		row := fileRow{RelPath: in.Source.RelPath, Path: in.Source.Path, Pages: in.Pages, OK: in.OK()}
		if in.Err != nil {
			row.Problem = in.Err.Error()
		}
		data.TotalPages += in.Pages
		data.Files = append(data.Files, row)
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("rendering page")
	}
}

// selected keeps the sources whose relative path is in picks. An empty pick
// list keeps everything.
func selected(srcs []types.SourceFile, picks []string) []types.SourceFile {
	if len(picks) == 0 {
		return srcs
	}
	want := make(map[string]bool, len(picks))
	for _, p := range picks {
		want[p] = true
	}
	var out []types.SourceFile
	for _, s := range srcs {
		if want[s.RelPath] {
			out = append(out, s)
		}
	}
	return out
}
