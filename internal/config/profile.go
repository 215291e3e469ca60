// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ampboard/ampboard/internal/i18n"
	"github.com/ampboard/ampboard/internal/logging"
	"github.com/ampboard/ampboard/internal/model"
	"github.com/goccy/go-yaml"
)

const (
	foldersBase   = "folders"
	templatesBase = "link_templates"
)

// profileExts are tried in order for each profile file.
var profileExts = []string{".json", ".yaml", ".yml"}

// LoadProfile reads the folders and link template files from dir. Missing
// files leave the corresponding list empty. Column entries that are not
// objects are dropped and reported as warnings; malformed files are errors.
func LoadProfile(dir string) (model.Profile, []string, error) {
	var p model.Profile
	var warnings []string

	if data, path, ok, err := readProfileFile(dir, foldersBase); err != nil {
		return p, nil, err
	} else if ok {
		p.Folders, warnings, err = decodeFolders(data)
		if err != nil {
			return p, nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if data, path, ok, err := readProfileFile(dir, templatesBase); err != nil {
		return p, nil, err
	} else if ok {
		if err := yaml.UnmarshalWithOptions(data, &p.Templates, decodeOptions()...); err != nil {
			return p, nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	for i := range p.Folders {
		p.Folders[i].ApplyDefaults()
	}
	logging.Debugf("config: profile %s has %d columns, %d templates", dir, len(p.Folders), len(p.Templates))
	return p, warnings, nil
}

func readProfileFile(dir, base string) ([]byte, string, bool, error) {
	for _, ext := range profileExts {
		path := filepath.Join(dir, base+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, path, false, fmt.Errorf("read %s: %w", path, err)
		}
		return data, path, true, nil
	}
	return nil, "", false, nil
}

// decodeOptions keep mapping order and repeated keys, so a special case
// written twice keeps both rows and the later one wins on lookup.
func decodeOptions() []yaml.DecodeOption {
	return []yaml.DecodeOption{yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()}
}

// decodeFolders decodes the column list one element at a time, keeping
// mapping order so special cases stay in document order.
func decodeFolders(data []byte) ([]model.ColumnRule, []string, error) {
	var raw []any
	if err := yaml.UnmarshalWithOptions(data, &raw, decodeOptions()...); err != nil {
		return nil, nil, err
	}

	var cols []model.ColumnRule
	var warnings []string
	for i, item := range raw {
		if _, ok := item.(yaml.MapSlice); !ok {
			warnings = append(warnings, i18n.T("warnings.column_not_object"))
			continue
		}
		buf, err := yaml.Marshal(item)
		if err != nil {
			return nil, nil, fmt.Errorf("column %d: %w", i, err)
		}
		var col model.ColumnRule
		if err := yaml.UnmarshalWithOptions(buf, &col, decodeOptions()...); err != nil {
			return nil, nil, fmt.Errorf("column %d: %w", i, err)
		}
		cols = append(cols, col)
	}
	return cols, warnings, nil
}

// ProfileExists reports whether dir already holds a folders or link
// templates file in any supported format.
func ProfileExists(dir string) bool {
	for _, base := range []string{foldersBase, templatesBase} {
		for _, ext := range profileExts {
			if _, err := os.Stat(filepath.Join(dir, base+ext)); err == nil {
				return true
			}
		}
	}
	return false
}

// WriteProfile writes the profile to dir as folders.yaml and
// link_templates.yaml.
func WriteProfile(dir string, p model.Profile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create profile directory %s: %w", dir, err)
	}
	folders, err := yaml.Marshal(p.Folders)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, foldersBase+".yaml"), folders, 0o644); err != nil {
		return err
	}
	templates, err := yaml.Marshal(p.Templates)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, templatesBase+".yaml"), templates, 0o644)
}
