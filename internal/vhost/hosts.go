// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package vhost

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/ampboard/ampboard/internal/logging"
	"golang.org/x/net/idna"
)

// DefaultHostsPaths returns the hosts file locations for the running OS.
func DefaultHostsPaths() []string {
	if runtime.GOOS == "windows" {
		windir := os.Getenv("WINDIR")
		if windir == "" {
			return nil
		}
		return []string{filepath.Join(windir, "System32", "drivers", "etc", "hosts")}
	}
	return []string{"/etc/hosts"}
}

// ParseHosts returns every alias found in hosts file text, lower-cased and
// de-duplicated in first-seen order. The address column is ignored.
func ParseHosts(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	collectHosts(text, seen, &out)
	return out
}

// ReadHosts reads and merges the given hosts files. Missing or unreadable
// files are skipped.
func ReadHosts(paths ...string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			logging.Debugf("vhost: hosts file %s skipped: %v", p, err)
			continue
		}
		collectHosts(string(data), seen, &out)
	}
	return out
}

func collectHosts(text string, seen map[string]struct{}, out *[]string) {
	eachLine(text, func(line string) {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return
		}
		for _, alias := range fields[1:] {
			host := NormalizeHost(alias)
			if host == "" {
				continue
			}
			if _, ok := seen[host]; ok {
				continue
			}
			seen[host] = struct{}{}
			*out = append(*out, host)
		}
	})
}

// NormalizeHost lower-cases a hostname for comparison. Non-ASCII names are
// converted to their IDNA ASCII form when possible; a trailing dot is dropped.
func NormalizeHost(raw string) string {
	host := strings.TrimSuffix(strings.TrimSpace(raw), ".")
	if host == "" {
		return ""
	}
	if isASCII(host) {
		return strings.ToLower(host)
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return strings.ToLower(host)
	}
	return strings.ToLower(ascii)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
