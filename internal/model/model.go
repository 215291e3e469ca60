// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the typed profile structures consumed by the folders
// core: column rules, their special-case overrides and link templates.
package model

import (
	"fmt"
	"strings"
)

// DefaultTemplateName is the template used when a column names none, and the
// first fallback when the named template does not exist.
const DefaultTemplateName = "basic"

// Placeholder is the token substituted with the computed name in template HTML.
const Placeholder = "{urlName}"

// URLRules is the match/replace regex pair of a column. Both sides must be
// set, or neither.
type URLRules struct {
	Match   string `json:"match" yaml:"match"`
	Replace string `json:"replace" yaml:"replace"`
}

// Empty reports whether neither side carries a pattern.
func (r URLRules) Empty() bool {
	return strings.TrimSpace(r.Match) == "" && strings.TrimSpace(r.Replace) == ""
}

// Paired reports whether both sides carry a pattern.
func (r URLRules) Paired() bool {
	return strings.TrimSpace(r.Match) != "" && strings.TrimSpace(r.Replace) != ""
}

// ColumnRule is one configured display column.
type ColumnRule struct {
	Title        string       `json:"title" yaml:"title"`
	Href         string       `json:"href,omitempty" yaml:"href,omitempty"`
	Dir          string       `json:"dir" yaml:"dir"`
	ExcludeList  []string     `json:"excludeList,omitempty" yaml:"excludeList,omitempty"`
	URLRules     URLRules     `json:"urlRules" yaml:"urlRules"`
	SpecialCases SpecialCases `json:"specialCases,omitempty" yaml:"specialCases,omitempty"`
	LinkTemplate string       `json:"linkTemplate" yaml:"linkTemplate"`
	DisableLinks bool         `json:"disableLinks,omitempty" yaml:"disableLinks,omitempty"`
	RequireVhost bool         `json:"requireVhost,omitempty" yaml:"requireVhost,omitempty"`
}

// Excludes reports whether name is on the column's exclude list. The match is
// exact and case-sensitive.
func (c ColumnRule) Excludes(name string) bool {
	for _, e := range c.ExcludeList {
		if e == name {
			return true
		}
	}
	return false
}

// ApplyDefaults fills the fields the dashboard treats as implicitly set.
func (c *ColumnRule) ApplyDefaults() {
	if c.Title == "" {
		c.Title = "Untitled"
	}
	if c.LinkTemplate == "" {
		c.LinkTemplate = DefaultTemplateName
	}
}

// Template is a named piece of link markup containing Placeholder.
type Template struct {
	Name string `json:"name" yaml:"name"`
	HTML string `json:"html" yaml:"html"`
}

// TemplatesByName indexes templates by name. Entries without a name are
// dropped; a later template with the same name replaces an earlier one.
func TemplatesByName(templates []Template) map[string]Template {
	out := make(map[string]Template, len(templates))
	for _, t := range templates {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		out[name] = t
	}
	return out
}

// Profile is the user-editable part of the dashboard configuration.
type Profile struct {
	Folders   []ColumnRule `json:"folders" yaml:"folders"`
	Templates []Template   `json:"linkTemplates" yaml:"linkTemplates"`
}

// String returns a short human readable description of the column.
func (c ColumnRule) String() string {
	return fmt.Sprintf("%s (%s)", c.Title, c.Dir)
}
