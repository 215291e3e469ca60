// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package listing resolves configured column directories below the document
// root and lists their project folders.
package listing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrTraversal is returned when a configured directory tries to leave the
// document root.
var ErrTraversal = errors.New("directory traversal detected")

// Root lists directories below a document root.
type Root struct {
	Htdocs string
}

// Resolve anchors rel below the document root. Any ".." in the normalised
// path is rejected.
func (r Root) Resolve(rel string) (string, error) {
	sub := strings.ReplaceAll(strings.TrimSpace(rel), `\`, "/")
	sub = strings.Trim(filepath.ToSlash(sub), "/")
	if strings.Contains(sub, "..") {
		return "", fmt.Errorf("resolve %q: %w", rel, ErrTraversal)
	}
	return filepath.Join(r.Htdocs, filepath.FromSlash(sub)), nil
}

// List returns the names of the immediate subdirectories of absDir in natural,
// case-insensitive order. Hidden entries are included, "." and ".." are not.
// A missing directory yields an error wrapping os.ErrNotExist.
func (r Root) List(absDir string) ([]string, error) {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", absDir, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			if e.Type()&os.ModeSymlink == 0 {
				continue
			}
			fi, err := os.Stat(filepath.Join(absDir, e.Name()))
			if err != nil || !fi.IsDir() {
				continue
			}
		}
		out = append(out, e.Name())
	}
	SortNatural(out)
	return out, nil
}

// SortNatural sorts names so that embedded numbers compare by value and
// letters compare case-insensitively ("img2" before "IMG10").
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})
}

// NaturalLess reports whether a sorts before b in natural case-insensitive
// order.
func NaturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for a != "" && b != "" {
		ca, ra := chunk(a)
		cb, rb := chunk(b)
		if ca != cb {
			if isDigit(ca[0]) && isDigit(cb[0]) {
				na, nb := strings.TrimLeft(ca, "0"), strings.TrimLeft(cb, "0")
				if len(na) != len(nb) {
					return len(na) < len(nb)
				}
				if na != nb {
					return na < nb
				}
				// Equal value: fewer leading zeros first.
				return len(ca) < len(cb)
			}
			return ca < cb
		}
		a, b = ra, rb
	}
	return len(a) < len(b)
}

// chunk splits off the leading run of digits or non-digits.
func chunk(s string) (string, string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
