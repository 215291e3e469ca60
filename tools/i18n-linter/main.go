// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that every message id passed to i18n.T exists in the
// primary locale and that every other locale carries the same ids.
//
// Usage:
//
//	go run ./tools/i18n-linter [project-root]
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

var usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

// report is the outcome of one lint run. Undefined and missing ids fail the
// run; orphaned ids are only reported.
type report struct {
	Undefined []string            // used in code, absent from the primary locale
	Orphaned  []string            // in the primary locale, never used in code
	Missing   map[string][]string // locale file -> ids absent from it
}

func (r report) failed() bool {
	return len(r.Undefined) > 0 || len(r.Missing) > 0
}

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	rep, err := lint(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	printReport(os.Stdout, rep)
	if rep.failed() {
		os.Exit(1)
	}
}

func lint(root string) (report, error) {
	rep := report{Missing: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return rep, fmt.Errorf("scan sources: %w", err)
	}
	dir := filepath.Join(root, localesDir)
	primary, err := loadKeysFromLocale(filepath.Join(dir, primaryLocale))
	if err != nil {
		return rep, fmt.Errorf("load %s: %w", primaryLocale, err)
	}

	rep.Undefined = difference(used, primary)
	rep.Orphaned = difference(primary, used)

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return rep, err
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return rep, fmt.Errorf("load %s: %w", file, err)
		}
		if missing := difference(primary, keys); len(missing) > 0 {
			rep.Missing[filepath.Base(file)] = missing
		}
	}
	return rep, nil
}

func printReport(w io.Writer, rep report) {
	section := func(title string, ids []string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(ids) == 0 {
			fmt.Fprintln(w, "  none")
		}
		for _, id := range ids {
			fmt.Fprintf(w, "  - %s\n", id)
		}
	}
	section("Used but undefined", rep.Undefined)
	section("Defined but unused", rep.Orphaned)

	locales := make([]string, 0, len(rep.Missing))
	for l := range rep.Missing {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	for _, l := range locales {
		section("Missing from "+l, rep.Missing[l])
	}
}

// findUsedKeys scans non-test .go files under root for i18n.T("id") calls.
// The tools directory and dot directories are skipped.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a locale file and returns its message ids. Nested
// mappings are flattened with dots, so flat and nested files compare equal.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		flattenYAML(k, v, keys)
	}
}

// difference returns the sorted keys of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
