// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package vhost parses Apache virtual host configuration and the system hosts
// file, and merges the two into per-host validity records.
package vhost

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ampboard/ampboard/internal/logging"
)

// HostRecord is one parsed <VirtualHost> block.
type HostRecord struct {
	Name         string `json:"name"`
	UsesTLS      bool   `json:"ssl"`
	CertPath     string `json:"cert"`
	KeyPath      string `json:"key"`
	CertValid    bool   `json:"certValid"`
	DocumentRoot string `json:"docRoot"`
	IsValidHost  bool   `json:"valid"`
	IsDuplicate  bool   `json:"duplicate"`
}

var (
	blockOpenRe  = regexp.MustCompile(`(?i)^<VirtualHost\s+.*:(\d+)>`)
	blockCloseRe = regexp.MustCompile(`(?i)^</VirtualHost>`)
	serverNameRe = regexp.MustCompile(`(?i)^\s*ServerName\s+(.+)`)
	docRootRe    = regexp.MustCompile(`(?i)^\s*DocumentRoot\s+(.+)`)
	certFileRe   = regexp.MustCompile(`(?i)^\s*SSLCertificateFile\s+(.+)`)
	keyFileRe    = regexp.MustCompile(`(?i)^\s*SSLCertificateKeyFile\s+(.+)`)
)

// parseState is the scanner state: either no block is open (block == nil) or
// one partial record is being accumulated.
type parseState struct {
	block      *HostRecord
	crtBaseDir string
	out        map[string]*HostRecord
}

func (s *parseState) open(port string) {
	s.block = &HostRecord{UsesTLS: port == "443"}
}

// finalize closes the open block, if any. It serves both </VirtualHost> and
// end of input.
func (s *parseState) finalize() {
	b := s.block
	s.block = nil
	if b == nil || b.Name == "" {
		return
	}

	b.CertValid = true
	if b.UsesTLS {
		b.CertPath = resolveCertPath(s.crtBaseDir, b.Name, "server.crt")
		b.KeyPath = resolveCertPath(s.crtBaseDir, b.Name, "server.key")
		b.CertValid = fileExists(b.CertPath) && fileExists(b.KeyPath)
	}

	if prev, ok := s.out[b.Name]; ok {
		prev.IsDuplicate = true
		b.IsDuplicate = true
	}
	s.out[b.Name] = b
}

func (s *parseState) line(line string) {
	line = strings.TrimSpace(line)

	if m := blockOpenRe.FindStringSubmatch(line); m != nil {
		// An unterminated previous block is dropped, not finalised.
		s.open(m[1])
		return
	}
	if blockCloseRe.MatchString(line) {
		s.finalize()
		return
	}
	if s.block == nil {
		return
	}

	switch {
	case serverNameRe.MatchString(line):
		s.block.Name = directiveValue(serverNameRe, line)
	case docRootRe.MatchString(line):
		s.block.DocumentRoot = directiveValue(docRootRe, line)
	case certFileRe.MatchString(line):
		s.block.CertPath = directiveValue(certFileRe, line)
	case keyFileRe.MatchString(line):
		s.block.KeyPath = directiveValue(keyFileRe, line)
	}
}

// ParseConfig parses virtual host configuration text into records keyed by
// ServerName. TLS records get their certificate and key paths recomputed as
// {crtBaseDir}/{name}/server.crt and server.key; paths given in the text are
// ignored. Empty input yields an empty map.
func ParseConfig(text, crtBaseDir string) map[string]*HostRecord {
	st := &parseState{crtBaseDir: crtBaseDir, out: make(map[string]*HostRecord)}

	eachLine(text, st.line)
	st.finalize()

	logging.Debugf("vhost: parsed %d virtual hosts", len(st.out))
	return st.out
}

// ParseConfigFile reads and parses the file at path. A missing or unreadable
// file yields an empty map.
func ParseConfigFile(path, crtBaseDir string) map[string]*HostRecord {
	if path == "" {
		return map[string]*HostRecord{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Debugf("vhost: config %s not readable: %v", path, err)
		return map[string]*HostRecord{}
	}
	return ParseConfig(string(data), crtBaseDir)
}

// eachLine calls fn for every line of text. Lines have no length limit, so
// one oversized line cannot hide the entries after it.
func eachLine(text string, fn func(string)) {
	r := bufio.NewReader(strings.NewReader(text))
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logging.Warnf("vhost: reading input: %v", err)
			}
			return
		}
	}
}

func directiveValue(re *regexp.Regexp, line string) string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// resolveCertPath builds {base}/{name}/{file} as an absolute path, following
// symlinks when the file exists.
func resolveCertPath(base, name, file string) string {
	p := filepath.Join(base, name, file)
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if real, err := filepath.EvalSymlinks(p); err == nil {
		return real
	}
	return p
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
