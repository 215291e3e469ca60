// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package urlname computes the display name of a directory entry from a
// column's match/replace rules and special-case overrides.
//
// The pipeline is:
//
//  1. no rules: the raw name is kept
//  2. only one side of the rule pair set: warning, raw name kept
//  3. match pattern does not compile: warning, raw name kept
//  4. raw name does not match: the entry is skipped
//  5. every match of the replace pattern is removed from the name; a replace
//     pattern that does not compile is a warning and the raw name is kept
//  6. the resulting name is looked up in the special cases
package urlname

import (
	"html"
	"regexp"
	"strings"

	"github.com/ampboard/ampboard/internal/i18n"
	"github.com/ampboard/ampboard/internal/model"
)

// Result is the outcome of transforming one entry name.
type Result struct {
	Name    string
	Skipped bool
}

// Rendered returns a kept result carrying name.
func Rendered(name string) Result { return Result{Name: name} }

// Skip is the result for an entry excluded from its column.
var Skip = Result{Skipped: true}

type compiled struct {
	re  *regexp.Regexp
	err error
}

// Transformer applies column rules to entry names, compiling each distinct
// pattern once. The zero value is ready to use; it is not safe for concurrent
// use.
type Transformer struct {
	cache map[string]compiled
}

// Transform is Transformer.Transform on a fresh Transformer.
func Transform(rawName string, rule model.ColumnRule) (Result, []string) {
	var t Transformer
	return t.Transform(rawName, rule)
}

// Transform computes the display name of rawName under rule. Configuration
// problems never fail the call; they are returned as warnings and the name
// passes through unchanged.
func (t *Transformer) Transform(rawName string, rule model.ColumnRule) (Result, []string) {
	name, skip, warnings := t.applyRules(rawName, rule)
	if skip {
		return Skip, warnings
	}
	if v, ok := rule.SpecialCases.Lookup(name); ok {
		name = v
	}
	return Rendered(name), warnings
}

func (t *Transformer) applyRules(rawName string, rule model.ColumnRule) (string, bool, []string) {
	rules := rule.URLRules
	if rules.Empty() {
		return rawName, false, nil
	}
	data := map[string]any{"Title": html.EscapeString(rule.Title)}
	if !rules.Paired() {
		return rawName, false, []string{i18n.T("warnings.url_rules_unpaired", data)}
	}

	match := t.compile(rules.Match)
	if match.err != nil {
		return rawName, false, []string{i18n.T("warnings.url_rules_invalid_match", data)}
	}
	if !match.re.MatchString(rawName) {
		return "", true, nil
	}

	replace := t.compile(rules.Replace)
	if replace.err != nil {
		return rawName, false, []string{i18n.T("warnings.url_rules_invalid_replace", data)}
	}
	return replace.re.ReplaceAllLiteralString(rawName, ""), false, nil
}

func (t *Transformer) compile(pattern string) compiled {
	pattern = strings.TrimSpace(pattern)
	if c, ok := t.cache[pattern]; ok {
		return c
	}
	if t.cache == nil {
		t.cache = make(map[string]compiled)
	}
	re, err := CompilePattern(pattern)
	c := compiled{re: re, err: err}
	t.cache[pattern] = c
	return c
}
