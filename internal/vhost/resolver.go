// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package vhost

import (
	"sort"

	"github.com/ampboard/ampboard/internal/logging"
)

// Source supplies the two inputs of a Resolver.
type Source interface {
	VirtualHosts() map[string]*HostRecord
	Hosts() []string
}

// FileSource reads the vhost configuration and hosts files from disk.
type FileSource struct {
	VhostsFile string
	CrtDir     string
	HostsFiles []string
}

// VirtualHosts implements Source.
func (f FileSource) VirtualHosts() map[string]*HostRecord {
	return ParseConfigFile(f.VhostsFile, f.CrtDir)
}

// Hosts implements Source.
func (f FileSource) Hosts() []string {
	return ReadHosts(f.HostsFiles...)
}

// TextSource parses already loaded text.
type TextSource struct {
	Config     string
	CrtDir     string
	HostsFiles []string
}

// VirtualHosts implements Source.
func (t TextSource) VirtualHosts() map[string]*HostRecord {
	return ParseConfig(t.Config, t.CrtDir)
}

// Hosts implements Source.
func (t TextSource) Hosts() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, text := range t.HostsFiles {
		collectHosts(text, seen, &out)
	}
	return out
}

// Resolver merges parsed virtual hosts with the hosts allow-list. The merged
// result is computed once and reused; create one Resolver per processing run
// and do not share it between runs.
type Resolver struct {
	src    Source
	cache  map[string]*HostRecord
	valid  map[string]bool
	loaded bool
}

// NewResolver returns a Resolver reading from src.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve returns the virtual hosts keyed by ServerName, with IsValidHost set
// for every host present in the allow-list. Subsequent calls return the same
// map without re-reading the sources.
func (r *Resolver) Resolve() map[string]*HostRecord {
	if r.loaded {
		return r.cache
	}
	r.loaded = true

	r.cache = r.src.VirtualHosts()
	if r.cache == nil {
		r.cache = map[string]*HostRecord{}
	}
	hosts := r.src.Hosts()
	if len(r.cache) == 0 || len(hosts) == 0 {
		logging.Debugf("vhost: nothing to enrich (%d vhosts, %d hosts)", len(r.cache), len(hosts))
		return r.cache
	}

	known := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		known[h] = struct{}{}
	}
	for name, rec := range r.cache {
		if _, ok := known[NormalizeHost(name)]; ok {
			rec.IsValidHost = true
		}
	}
	return r.cache
}

// ValidHostnames returns lower-cased hostname -> true for every valid vhost.
func (r *Resolver) ValidHostnames() map[string]bool {
	if r.valid != nil {
		return r.valid
	}
	r.valid = make(map[string]bool)
	for name, rec := range r.Resolve() {
		if rec.IsValidHost {
			r.valid[NormalizeHost(name)] = true
		}
	}
	return r.valid
}

// IsValidVhostHost reports whether hostname is both a configured vhost and
// present in the hosts allow-list. The comparison is case-insensitive.
func (r *Resolver) IsValidVhostHost(hostname string) bool {
	h := NormalizeHost(hostname)
	if h == "" {
		return false
	}
	return r.ValidHostnames()[h]
}

// Records returns the resolved records sorted by name.
func (r *Resolver) Records() []*HostRecord {
	m := r.Resolve()
	out := make([]*HostRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validity returns lower-cased hostname -> IsValidHost for every parsed vhost,
// for display badges that need the negative case too.
func (r *Resolver) Validity() map[string]bool {
	out := make(map[string]bool)
	for name, rec := range r.Resolve() {
		out[NormalizeHost(name)] = rec.IsValidHost
	}
	return out
}
