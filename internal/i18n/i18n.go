// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides the localised message catalogue for AMPBoard. All
// user-visible warnings produced while rendering folder columns come from
// here, so the dashboard can show them in the configured language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
	locales   []string
)

// Init loads every embedded locale and selects lang.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()

	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	locales = locales[:0]
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			continue
		}
		locales = append(locales, strings.TrimSuffix(f.Name(), ".yaml"))
	}
	sort.Strings(locales)

	if l == "" {
		l = "en"
	}
	lang = l
	localizer = i18n.NewLocalizer(bundle, l)
}

// GetLang returns the active language tag.
func GetLang() string {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// GetAvailableLocales maps every embedded locale to its display name in
// that language.
func GetAvailableLocales() map[string]string {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]string, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			out[l] = l
			continue
		}
		name := display.Self.Name(tag)
		if name == "" {
			name = l
		}
		out[l] = name
	}
	return out
}

// T translates messageID. A single map argument is used as template data
// ({{.Title}}); any other arguments are applied fmt-style to the translated
// text. Unknown IDs are returned unchanged.
func T(messageID string, args ...any) string {
	ensure()
	mu.RLock()
	loc := localizer
	mu.RUnlock()

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}
	msg, err := loc.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func ensure() {
	mu.RLock()
	ready := localizer != nil
	mu.RUnlock()
	if !ready {
		Init("en")
	}
}
