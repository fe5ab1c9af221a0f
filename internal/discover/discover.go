// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds the PDF files to merge and orders them naturally.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-combiner/pkg/types"
)

var (
	// ErrDirNotFound is returned when the root directory does not exist.
	ErrDirNotFound = errors.New("folder does not exist")

	// ErrNotDirectory is returned when the root path is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNoFiles is returned when no PDF files were found.
	ErrNoFiles = errors.New("no PDF files found")
)

// Options controls a discovery run.
type Options struct {
	// Recursive descends into subfolders of the root.
	Recursive bool

	// Exclude lists paths that are never returned, typically the output
	// file of a previous run.
	Exclude []string
}

// Find returns the PDF files under root in natural order. A file counts as a
// PDF when its extension is ".pdf" in any letter case. Hidden directories are
// still descended. Regular files and symlinks to regular files are returned;
// scratch files left behind by an interrupted merge are not.
func Find(root string, opts Options) ([]types.SourceFile, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, p := range opts.Exclude {
		excluded[absPath(p)] = true
	}

	var files []types.SourceFile
	add := func(path string, d fs.DirEntry) {
		if !IsPDF(d.Name()) || strings.HasPrefix(d.Name(), types.TempPrefix) {
			return
		}
		if !isRegular(path, d) {
			return
		}
		if excluded[absPath(path)] {
			return
		}
		files = append(files, types.NewSourceFile(root, path))
	}

	if opts.Recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if !d.IsDir() {
				add(path, d)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("reading folder %s: %w", root, err)
		}
		for _, e := range entries {
			add(filepath.Join(root, e.Name()), e)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, root)
	}

	Sort(files)
	return files, nil
}

// IsPDF reports whether name has a ".pdf" extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// isRegular reports whether d is a regular file, following a symlink to its
// target. Symlinked directories are not descended.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDirNotFound, root)
		}
		return fmt.Errorf("checking folder %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
