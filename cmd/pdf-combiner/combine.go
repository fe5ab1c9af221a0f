package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/pdf-combiner/internal/combine"
	"github.com/pdiddy/pdf-combiner/internal/discover"
	"github.com/pdiddy/pdf-combiner/internal/prompt"
	"github.com/pdiddy/pdf-combiner/pkg/types"
)

var (
	errCancelled = errors.New("operation cancelled")
	errNoFolder  = errors.New("no folder path provided")
)

// runMode captures which settings came from the command line and whether
// missing ones should be asked for.
type runMode struct {
	interactive  bool
	recursiveSet bool
	outputSet    bool
}

// runner carries the dependencies of one CLI merge run.
type runner struct {
	out     io.Writer
	errOut  io.Writer
	prompt  prompt.Prompter
	log     zerolog.Logger
	backend combine.Backend // nil selects pdfcpu
}

func (r *runner) run(ctx context.Context, cfg types.CombineConfig, mode runMode) error {
	if mode.interactive {
		fmt.Fprintln(r.out, "=== PDF Combiner with Automatic Bookmarks ===")
	}

	if cfg.Folder == "" {
		if !mode.interactive {
			return errNoFolder
		}
		folder, err := r.prompt.Input("Enter the path to the folder containing PDFs", "")
		if err != nil {
			return err
		}
		cfg.Folder = strings.TrimSpace(folder)
		if cfg.Folder == "" {
			return errNoFolder
		}
	}

	if mode.interactive && !mode.recursiveSet && !cfg.AssumeYes {
		rec, err := r.prompt.Confirm("Include PDFs from subfolders as well?", true)
		if err != nil {
			return err
		}
		cfg.Recursive = rec
	}

	out := cfg.OutputPath()
	scope := ""
	if cfg.Recursive {
		scope = " (including subfolders)"
	}
	fmt.Fprintf(r.out, "\nScanning folder: %s%s\n", cfg.Folder, scope)

	srcs, err := discover.Find(cfg.Folder, discover.Options{
		Recursive: cfg.Recursive,
		Exclude:   []string{out},
	})
	if err != nil {
		return err
	}

	backend := r.backend
	if backend == nil {
		backend = combine.NewPDFCPU(cfg.Relaxed)
	}
	bar := progressbar.NewOptions(len(srcs),
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetDescription("Inspecting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	engine := combine.New(backend,
		combine.WithLogger(r.log),
		combine.WithStatus(r.out),
		combine.WithProgress(func(types.SourceFile) { _ = bar.Add(1) }),
	)

	inspected, err := engine.Inspect(ctx, srcs)
	_ = bar.Finish()
	if err != nil {
		return err
	}
	r.list(inspected)

	if mode.interactive && !cfg.AssumeYes {
		ok, err := r.prompt.Confirm(fmt.Sprintf("Do you want to combine all %d PDFs?", len(inspected)), false)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
		if !mode.outputSet {
			name, err := r.prompt.Input("Enter output filename", types.DefaultOutputName)
			if err != nil {
				return err
			}
			cfg.Output = name
			out = cfg.OutputPath()
			inspected = withoutPath(inspected, out)
		}
	}

	// Non-interactive runs replace an existing output without asking.
	if _, err := os.Stat(out); err == nil && mode.interactive && !cfg.AssumeYes {
		ok, err := r.prompt.Confirm(fmt.Sprintf("File '%s' already exists. Overwrite?", filepath.Base(out)), false)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	fmt.Fprintf(r.out, "\nCombining %d PDFs into '%s'\n", len(inspected), out)
	res, err := engine.Merge(ctx, inspected, out)
	if err != nil {
		return err
	}

	if cfg.Manifest != "" {
		if err := combine.WriteManifest(cfg.Manifest, res); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Manifest written to: %s\n", cfg.Manifest)
	}

	fmt.Fprintf(r.out, "\nSuccess! Combined PDF saved as: %s\n", out)
	if res.HasWarnings() {
		fmt.Fprintf(r.out, "%d file(s) were skipped; see the warnings above.\n", len(res.Skipped))
	}
	fmt.Fprintln(r.out, "Open the file in any PDF viewer to see the bookmarks in the sidebar.")
	return nil
}

// list prints the inspected files with their page counts.
func (r *runner) list(inspected []combine.Inspection) {
	fmt.Fprintf(r.out, "\nFound %d PDF files:\n", len(inspected))
	total := 0
	for i, in := range inspected {
		if in.OK() {
			total += in.Pages
			fmt.Fprintf(r.out, "  %2d. %-30s (%3d pages)  -> %s\n", i+1, in.Source.Name, in.Pages, in.Source.Path)
		} else {
			fmt.Fprintf(r.out, "  %2d. %-30s (unreadable: %v)\n", i+1, in.Source.Name, in.Err)
		}
	}
	fmt.Fprintf(r.out, "\nTotal pages: %d\n", total)
}

// withoutPath drops the inspection of the file at path, so that an output
// name chosen after discovery never merges an input into itself.
func withoutPath(inspected []combine.Inspection, path string) []combine.Inspection {
	target, err := filepath.Abs(path)
	if err != nil {
		target = path
	}
	out := inspected[:0:0]
	for _, in := range inspected {
		p, err := filepath.Abs(in.Source.Path)
		if err != nil {
			p = in.Source.Path
		}
		if p != target {
			out = append(out, in)
		}
	}
	return out
}
