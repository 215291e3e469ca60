// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package export writes rendered dashboard snapshots to disk.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ampboard/ampboard/internal/render"
	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks snapshot files that are zstd-compressed.
const CompressedExt = ".zst"

// Snapshot is a point-in-time copy of the rendered dashboard.
type Snapshot struct {
	Version     string      `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Page        render.Page `json:"page"`
}

// NewSnapshot wraps page with the current time and version.
func NewSnapshot(page render.Page, version string) Snapshot {
	return Snapshot{Version: version, GeneratedAt: time.Now().UTC(), Page: page}
}

// Write encodes snap as indented JSON to w, optionally zstd-compressed.
func Write(w io.Writer, snap Snapshot, compress bool) error {
	if !compress {
		return encode(w, snap)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := encode(zw, snap); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush zstd writer: %w", err)
	}
	return nil
}

func encode(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// WriteFile writes snap to path. Paths ending in ".zst" are compressed.
func WriteFile(path string, snap Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Write(file, snap, IsCompressed(path)); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Read decodes a snapshot previously produced by Write.
func Read(r io.Reader, compressed bool) (Snapshot, error) {
	var snap Snapshot
	if compressed {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return snap, fmt.Errorf("create zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// ReadFile reads a snapshot file, decompressing it when the path ends in ".zst".
func ReadFile(path string) (Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Read(file, IsCompressed(path))
}

// IsCompressed reports whether path names a compressed snapshot.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), CompressedExt)
}
