// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ampboard/ampboard/internal/render"
)

func samplePage() render.Page {
	return render.Page{
		Columns: []render.ColumnView{{
			Title:  "Projects",
			Dir:    "projects",
			Status: render.StatusOK,
			Items:  []string{`<li><a href="/alpha">alpha</a></li>`},
		}},
		Warnings:   []string{"w1"},
		ValidHosts: map[string]bool{"alpha.test": true},
	}
}

func TestWriteFile_ByExtension(t *testing.T) {
	dir := t.TempDir()
	snap := NewSnapshot(samplePage(), "1.0.0")

	for _, name := range []string{"snap.json", "snap.json.zst"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, snap); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		isJSON := bytes.HasPrefix(raw, []byte("{"))
		if isJSON == IsCompressed(path) {
			t.Fatalf("%s: compression does not match extension", name)
		}

		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if got.Version != "1.0.0" || len(got.Page.Columns) != 1 || got.Page.Columns[0].Items[0] != snap.Page.Columns[0].Items[0] {
			t.Fatalf("%s: unexpected snapshot %#v", name, got)
		}
		if !got.Page.ValidHosts["alpha.test"] || got.Page.Warnings[0] != "w1" {
			t.Fatalf("%s: validity or warnings lost: %#v", name, got.Page)
		}
	}
}

func TestRead_RejectsGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not json")), false); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := Read(bytes.NewReader([]byte("not zstd")), true); err == nil {
		t.Fatalf("expected zstd error")
	}
}

func TestIsCompressed(t *testing.T) {
	tests := map[string]bool{
		"a.json":     false,
		"a.json.zst": true,
		"A.ZST":      true,
		"zst":        false,
	}
	for path, want := range tests {
		if got := IsCompressed(path); got != want {
			t.Errorf("IsCompressed(%q) = %v, want %v", path, got, want)
		}
	}
}
