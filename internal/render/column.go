// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package render turns column rules and directory listings into the list
// items shown on the dashboard.
package render

import (
	"errors"
	"html"
	"io/fs"

	"github.com/ampboard/ampboard/internal/i18n"
	"github.com/ampboard/ampboard/internal/listing"
	"github.com/ampboard/ampboard/internal/logging"
	"github.com/ampboard/ampboard/internal/model"
	"github.com/ampboard/ampboard/internal/urlname"
)

// HostValidator answers whether a hostname is a trusted virtual host.
// *vhost.Resolver implements it.
type HostValidator interface {
	IsValidVhostHost(hostname string) bool
}

// ValidityReporter is implemented by validators that can report the
// validity of every known host for display badges.
type ValidityReporter interface {
	Validity() map[string]bool
}

// DirLister resolves a column directory and lists its entries.
// listing.Root implements it.
type DirLister interface {
	Resolve(rel string) (string, error)
	List(absDir string) ([]string, error)
}

// Renderer renders the columns of one processing run. It owns the run's
// warning collector and compiled-pattern cache; create a new Renderer for
// every run.
type Renderer struct {
	templates map[string]model.Template
	hosts     HostValidator
	tr        urlname.Transformer
	warnings  Warnings
}

// New returns a Renderer using templates and, for vhost-gated columns, hosts.
// hosts may be nil, in which case gated columns render no items.
func New(templates []model.Template, hosts HostValidator) *Renderer {
	return &Renderer{
		templates: model.TemplatesByName(templates),
		hosts:     hosts,
	}
}

// Warnings returns the de-duplicated warnings collected so far.
func (r *Renderer) Warnings() []string {
	return r.warnings.List()
}

// Column renders the entries of one column in the order given. Excluded,
// skipped and vhost-gated entries are dropped silently. The returned
// warnings are the ones raised by this column; they are also added to the
// run's collector.
func (r *Renderer) Column(rule model.ColumnRule, entries []string) ([]string, []string) {
	tpl := ResolveTemplate(rule.LinkTemplate, r.templates)

	var items []string
	var colWarnings Warnings
	for _, entry := range entries {
		if rule.Excludes(entry) {
			continue
		}
		res, warns := r.tr.Transform(entry, rule)
		colWarnings.Add(warns...)
		if res.Skipped {
			continue
		}

		// Gating reads the links before DisableLinks strips them.
		if rule.RequireVhost && !r.hasValidHost(Substitute(tpl, res.Name)) {
			logging.Debugf("render: %q dropped from %s, no valid vhost", entry, rule)
			continue
		}
		items = append(items, Item(tpl, res.Name, rule.DisableLinks))
	}

	out := colWarnings.List()
	r.warnings.Add(out...)
	return items, out
}

func (r *Renderer) hasValidHost(markup string) bool {
	if r.hosts == nil {
		return false
	}
	for _, h := range ExtractHosts(markup) {
		if r.hosts.IsValidVhostHost(h) {
			return true
		}
	}
	return false
}

// ColumnStatus describes why a column has no items.
type ColumnStatus string

const (
	StatusOK         ColumnStatus = "ok"
	StatusDirMissing ColumnStatus = "invalid"
	StatusDirEmpty   ColumnStatus = "empty"
)

// ColumnView is one rendered column of the page.
type ColumnView struct {
	Title        string       `json:"title"`
	Href         string       `json:"href,omitempty"`
	Dir          string       `json:"dir"`
	DisableLinks bool         `json:"disableLinks"`
	RequireVhost bool         `json:"requireVhost"`
	Status       ColumnStatus `json:"status"`
	Notice       string       `json:"notice,omitempty"`
	Items        []string     `json:"items"`
}

// Page is the result of rendering every configured column.
type Page struct {
	Notice     string          `json:"notice,omitempty"`
	Columns    []ColumnView    `json:"columns"`
	Warnings   []string        `json:"warnings"`
	ValidHosts map[string]bool `json:"validHosts,omitempty"`
}

// Page renders every column of profile, listing directories through dirs.
// Columns keep their configured order.
func (r *Renderer) Page(profile model.Profile, dirs DirLister) Page {
	var page Page
	switch {
	case len(profile.Folders) == 0 && len(r.templates) == 0:
		page.Notice = i18n.T("profile.no_folders_or_templates")
	case len(profile.Folders) == 0:
		page.Notice = i18n.T("profile.no_folders")
	case len(r.templates) == 0:
		page.Notice = i18n.T("profile.no_templates")
	}
	if page.Notice != "" {
		page.Warnings = []string{}
		return page
	}

	for _, rule := range profile.Folders {
		rule.ApplyDefaults()
		page.Columns = append(page.Columns, r.columnView(rule, dirs))
	}
	page.Warnings = r.Warnings()
	logging.Debugf("render: %d columns, %d warnings", len(page.Columns), r.warnings.Len())
	if v, ok := r.hosts.(ValidityReporter); ok {
		page.ValidHosts = v.Validity()
	}
	return page
}

func (r *Renderer) columnView(rule model.ColumnRule, dirs DirLister) ColumnView {
	view := ColumnView{
		Title:        rule.Title,
		Href:         rule.Href,
		Dir:          rule.Dir,
		DisableLinks: rule.DisableLinks,
		RequireVhost: rule.RequireVhost,
		Status:       StatusOK,
		Items:        []string{},
	}

	abs, err := dirs.Resolve(rule.Dir)
	if err != nil {
		if errors.Is(err, listing.ErrTraversal) {
			r.warnings.Add(i18n.T("warnings.dir_traversal", map[string]any{"Title": html.EscapeString(rule.Title)}))
		}
		view.Status = StatusDirMissing
		view.Notice = i18n.T("column.dir_missing", "(unset)")
		return view
	}

	entries, err := dirs.List(abs)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warnf("render: listing %s: %v", abs, err)
		}
		view.Status = StatusDirMissing
		view.Notice = i18n.T("column.dir_missing", abs)
		return view
	}
	if len(entries) == 0 {
		view.Status = StatusDirEmpty
		view.Notice = i18n.T("column.dir_empty", abs)
		return view
	}

	items, _ := r.Column(rule, entries)
	view.Items = append(view.Items, items...)
	return view
}
