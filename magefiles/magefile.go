// Package main contains Mage build targets for pdf-combiner developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"

	"github.com/pdiddy/pdf-combiner/internal/pdftest"
)

const (
	binDir  = "bin"
	binName = "pdf-combiner"
	cmdPkg  = "./cmd/pdf-combiner"
	demoDir = "test_pdfs"
)

// demoFiles are the sample PDFs written by Demo, with their page counts.
// The names exercise natural ordering and the subfolder scan.
var demoFiles = []struct {
	name  string
	pages int
}{
	{"1.pdf", 1},
	{"2.pdf", 2},
	{"3.pdf", 1},
	{"10.pdf", 3},
	{filepath.Join("appendix", "A1.pdf"), 1},
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// Demo writes sample PDFs into test_pdfs/ and combines them with the
// freshly built binary.
func Demo() error {
	mg.Deps(Build)

	for _, f := range demoFiles {
		path := filepath.Join(demoDir, f.name)
		if err := pdftest.Write(path, f.pages); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  created", path)
	}

	cmd := exec.Command(filepath.Join(binDir, binName), demoDir, "-r", "-y")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("combining demo PDFs: %w", err)
	}
	return nil
}

// Stats prints non-blank Go lines per top-level directory, split into
// production and test code.
func Stats() error {
	type counts struct{ prod, test int }
	byDir := map[string]*counts{}
	var order []string

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		top := strings.SplitN(filepath.ToSlash(path), "/", 2)[0]
		c, ok := byDir[top]
		if !ok {
			c = &counts{}
			byDir[top] = c
			order = append(order, top)
		}
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	var total counts
	fmt.Printf("%-12s %8s %8s\n", "dir", "prod", "test")
	for _, dir := range order {
		c := byDir[dir]
		total.prod += c.prod
		total.test += c.test
		fmt.Printf("%-12s %8d %8d\n", dir, c.prod, c.test)
	}
	fmt.Printf("%-12s %8d %8d\n", "total", total.prod, total.test)
	return nil
}

// countLines returns the number of non-blank lines in the file at path.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
