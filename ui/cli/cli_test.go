// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ampboard/ampboard/internal/config"
	"github.com/ampboard/ampboard/internal/export"
)

// fixture lays out an Apache root, a document root, a hosts file and a
// profile under a temp dir, and returns the flags pointing at them.
func fixture(t *testing.T) (string, []string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("HOME", root)
	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(root); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	write := func(rel, content string) {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	for _, d := range []string{"htdocs/sites/known", "htdocs/sites/unknown", "htdocs/tools/adminer"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	write("apache/conf/extra/httpd-vhosts.conf",
		"<VirtualHost *:80>\n  ServerName known.test\n  DocumentRoot /srv/known\n</VirtualHost>\n"+
			"<VirtualHost *:443>\n  ServerName unknown.test\n</VirtualHost>\n")
	write("hosts", "127.0.0.1 localhost known.test\n")
	write("profile/folders.yaml", `- title: Sites
  dir: sites
  linkTemplate: vhost
  requireVhost: true
- title: Tools
  dir: tools
`)
	write("profile/link_templates.yaml", `- name: basic
  html: '<li><a href="/{urlName}">{urlName}</a></li>'
- name: vhost
  html: '<li><a href="http://{urlName}.test/">{urlName}</a></li>'
`)

	args := []string{
		"--paths.apache", filepath.Join(root, "apache"),
		"--paths.htdocs", filepath.Join(root, "htdocs"),
		"--paths.hosts", filepath.Join(root, "hosts"),
		"--paths.profile", filepath.Join(root, "profile"),
	}
	return root, args
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\nstderr: %s", args, err, errOut.String())
	}
	return out.String()
}

func TestFoldersCmd_HTML(t *testing.T) {
	_, flags := fixture(t)
	out := run(t, append([]string{"folders"}, flags...)...)

	if !strings.Contains(out, `<li><a href="http://known.test/">known</a></li>`) {
		t.Fatalf("vhost-backed entry missing:\n%s", out)
	}
	if strings.Contains(out, "unknown") {
		t.Fatalf("entry without a trusted vhost rendered:\n%s", out)
	}
	if !strings.Contains(out, `<li><a href="/adminer">adminer</a></li>`) {
		t.Fatalf("basic template entry missing:\n%s", out)
	}
}

func TestRootCmd_DefaultsToFolders(t *testing.T) {
	_, flags := fixture(t)
	if out := run(t, flags...); !strings.Contains(out, "adminer") {
		t.Fatalf("root command did not render folders:\n%s", out)
	}
}

func TestFoldersCmd_JSON(t *testing.T) {
	_, flags := fixture(t)
	out := run(t, append([]string{"folders", "--json"}, flags...)...)

	var page struct {
		Columns []struct {
			Title string   `json:"title"`
			Items []string `json:"items"`
		} `json:"columns"`
		ValidHosts map[string]bool `json:"validHosts"`
	}
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(page.Columns) != 2 || page.Columns[0].Title != "Sites" || len(page.Columns[0].Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if !page.ValidHosts["known.test"] || page.ValidHosts["unknown.test"] {
		t.Fatalf("unexpected validity: %v", page.ValidHosts)
	}
}

func TestVhostsCmd(t *testing.T) {
	_, flags := fixture(t)

	out := run(t, append([]string{"vhosts"}, flags...)...)
	if !strings.Contains(out, "known.test") || !strings.Contains(out, "/srv/known") || !strings.Contains(out, "Server name") {
		t.Fatalf("unexpected table:\n%s", out)
	}

	out = run(t, append([]string{"vhosts", "--json"}, flags...)...)
	var validity map[string]bool
	if err := json.Unmarshal([]byte(out), &validity); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(validity) != 2 || !validity["known.test"] || validity["unknown.test"] {
		t.Fatalf("unexpected validity: %v", validity)
	}
}

func TestVhostsCmd_NoneFound(t *testing.T) {
	root, _ := fixture(t)
	out := run(t, "vhosts", "--paths.vhosts", filepath.Join(root, "missing.conf"), "--paths.hosts", filepath.Join(root, "hosts"))
	if strings.TrimSpace(out) != "No virtual hosts found." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestHostsCmd(t *testing.T) {
	_, flags := fixture(t)
	out := run(t, append([]string{"hosts"}, flags...)...)
	if strings.TrimSpace(out) != "localhost\nknown.test" {
		t.Fatalf("unexpected hosts %q", out)
	}
}

func TestExportCmd(t *testing.T) {
	root, flags := fixture(t)
	path := filepath.Join(root, "snap.json.zst")
	out := run(t, append([]string{"export", path}, flags...)...)
	if !strings.Contains(out, path) {
		t.Fatalf("unexpected output %q", out)
	}
	snap, err := export.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(snap.Page.Columns) != 2 || snap.Version == "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestConfigFlag_MissingFile(t *testing.T) {
	root, _ := fixture(t)
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hosts", "--config", filepath.Join(root, "nope.yaml")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing --config file")
	}
}

func TestConfigFile_Language(t *testing.T) {
	root, flags := fixture(t)
	cfg := filepath.Join(root, "cfg.yaml")
	if err := os.WriteFile(cfg, []byte("language: de\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := run(t, append([]string{"vhosts", "--config", cfg}, flags...)...)
	if strings.Contains(out, "Server name") {
		t.Fatalf("expected German headers:\n%s", out)
	}
}

func TestInitCmd_WritesConfigAndProfile(t *testing.T) {
	root, _ := fixture(t)
	cfg := filepath.Join(root, "out", "ampboard.yaml")
	profile := filepath.Join(root, "starter")
	out := run(t, "init", "--output", cfg, "--paths.htdocs", "/srv/www", "--paths.profile", profile)

	if !strings.Contains(out, "Config written to "+cfg) {
		t.Fatalf("config not reported as written:\n%s", out)
	}
	if !strings.Contains(out, "Starter profile written to "+profile) {
		t.Fatalf("profile not reported as written:\n%s", out)
	}

	data, err := os.ReadFile(cfg)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "htdocs: /srv/www") {
		t.Fatalf("flag value not persisted:\n%s", data)
	}

	p, warnings, err := config.LoadProfile(profile)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(p.Folders) != 1 || p.Folders[0].Title != "Projects" {
		t.Fatalf("unexpected folders: %+v", p.Folders)
	}
	if len(p.Templates) != 1 || p.Templates[0].Name != "basic" {
		t.Fatalf("unexpected templates: %+v", p.Templates)
	}
}

func TestInitCmd_KeepsExistingFiles(t *testing.T) {
	root, flags := fixture(t)
	cfg := filepath.Join(root, "cfg.yaml")
	if err := os.WriteFile(cfg, []byte("language: en\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := run(t, append([]string{"init", "--output", cfg}, flags...)...)
	if !strings.Contains(out, "already exists") {
		t.Fatalf("expected existing config to be kept:\n%s", out)
	}
	if !strings.Contains(out, "A profile already exists in "+filepath.Join(root, "profile")) {
		t.Fatalf("expected existing profile to be kept:\n%s", out)
	}
	data, _ := os.ReadFile(cfg)
	if string(data) != "language: en\n" {
		t.Fatalf("config overwritten without --force:\n%s", data)
	}

	out = run(t, append([]string{"init", "--output", cfg, "--force"}, flags...)...)
	if !strings.Contains(out, "Config written to "+cfg) {
		t.Fatalf("--force did not overwrite config:\n%s", out)
	}
	data, _ = os.ReadFile(cfg)
	if !strings.Contains(string(data), "profile: "+filepath.Join(root, "profile")) {
		t.Fatalf("effective config not written:\n%s", data)
	}
}

func TestInitCmd_UserConfigPath(t *testing.T) {
	root, _ := fixture(t)
	run(t, "init", "--paths.profile", filepath.Join(root, "starter"))

	path, err := config.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("user config not written at %s: %v", path, err)
	}
}

func TestVersionCmd_ActiveLanguage(t *testing.T) {
	fixture(t)
	out := run(t, "version", "--language", "de")
	if !strings.Contains(out, "(active: de)") {
		t.Fatalf("active language missing:\n%s", out)
	}
}
