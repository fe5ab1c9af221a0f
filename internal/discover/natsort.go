// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pdf-combiner/pkg/types"
)

// run is one text or number segment of a path component.
type run struct {
	numeric bool
	digits  string // without leading zeros, so values of any length compare
	text    string
}

// splitRuns lower-cases s and splits it into alternating text and number runs.
func splitRuns(s string) []run {
	s = strings.ToLower(s)
	var runs []run
	i := 0
	for i < len(s) {
		j := i
		digit := isDigit(s[i])
		for j < len(s) && isDigit(s[j]) == digit {
			j++
		}
		seg := s[i:j]
		if digit {
			runs = append(runs, run{numeric: true, digits: strings.TrimLeft(seg, "0")})
		} else {
			runs = append(runs, run{text: seg})
		}
		i = j
	}
	return runs
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// compareRun orders runs: numbers before text, numbers by value, text lexically.
func compareRun(a, b run) int {
	switch {
	case a.numeric && !b.numeric:
		return -1
	case !a.numeric && b.numeric:
		return 1
	case a.numeric:
		if len(a.digits) != len(b.digits) {
			if len(a.digits) < len(b.digits) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.digits, b.digits)
	default:
		return strings.Compare(a.text, b.text)
	}
}

// compareComponent compares two path components in natural order.
func compareComponent(a, b string) int {
	ra, rb := splitRuns(a), splitRuns(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if c := compareRun(ra[i], rb[i]); c != 0 {
			return c
		}
	}
	return len(ra) - len(rb)
}

// Compare orders two relative paths naturally, component by component, so
// that "2.pdf" sorts before "10.pdf" and files in "chapter2/" come before
// files in "chapter10/". Paths with equal keys fall back to a byte-wise
// comparison so the order is total.
func Compare(a, b string) int {
	ca := strings.Split(filepath.Clean(a), string(filepath.Separator))
	cb := strings.Split(filepath.Clean(b), string(filepath.Separator))
	for i := 0; i < len(ca) && i < len(cb); i++ {
		if c := compareComponent(ca[i], cb[i]); c != 0 {
			return c
		}
	}
	if len(ca) != len(cb) {
		return len(ca) - len(cb)
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort orders files naturally by their path relative to the discovery root.
func Sort(files []types.SourceFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return Less(files[i].RelPath, files[j].RelPath)
	})
}
