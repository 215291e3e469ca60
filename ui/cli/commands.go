// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ampboard/ampboard/buildvars"
	"github.com/ampboard/ampboard/internal/export"
	"github.com/ampboard/ampboard/internal/i18n"
	"github.com/ampboard/ampboard/internal/render"
	"github.com/ampboard/ampboard/internal/vhost"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newFoldersCmd renders the dashboard columns.
func newFoldersCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Render the dashboard columns",
		Long: `Lists every configured column directory, applies the column's rules and
link template, and prints the resulting HTML fragment. With --json the page
model (columns, items, warnings and host validity) is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolders(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page model as JSON")
	return cmd
}

func runFolders(cmd *cobra.Command, asJSON bool) error {
	page, err := buildPage(appConfig)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), page)
	}
	return render.WriteHTML(cmd.OutOrStdout(), page)
}

// newVhostsCmd prints the parsed virtual hosts and their validity.
func newVhostsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "vhosts",
		Short: "List Apache virtual hosts and whether they are trusted",
		Long: `Parses the virtual host configuration and the hosts files and prints one
row per server name. A host is trusted when its name appears in a hosts file.
The certificate column shows whether both certificate files of a TLS host
exist. With --json only the name-to-validity map is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := newServices(appConfig).resolver
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resolver.Validity())
			}
			records := resolver.Records()
			if len(records) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), i18n.T("vhosts.none"))
				return err
			}
			if isTerminal(cmd.OutOrStdout()) {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), styledVhostTable(records))
				return err
			}
			return plainVhostTable(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the validity map as JSON")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func vhostHeaders() []string {
	return []string{
		i18n.T("vhosts.header_name"),
		i18n.T("vhosts.header_root"),
		i18n.T("vhosts.header_ssl"),
		i18n.T("vhosts.header_cert"),
		i18n.T("vhosts.header_host"),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func vhostRow(r *vhost.HostRecord) []string {
	name := r.Name
	if r.IsDuplicate {
		name += " (" + i18n.T("vhosts.duplicate") + ")"
	}
	cert := "-"
	if r.UsesTLS {
		cert = yesNo(r.CertValid)
	}
	return []string{name, r.DocumentRoot, yesNo(r.UsesTLS), cert, yesNo(r.IsValidHost)}
}

func plainVhostTable(out io.Writer, records []*vhost.HostRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(vhostHeaders(), "\t"))
	for _, r := range records {
		fmt.Fprintln(w, strings.Join(vhostRow(r), "\t"))
	}
	return w.Flush()
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("60")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	invalidStyle = cellStyle.Foreground(lipgloss.Color("203"))
	validStyle   = cellStyle.Foreground(lipgloss.Color("42"))
)

func styledVhostTable(records []*vhost.HostRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(vhostHeaders()...)
	for _, r := range records {
		t.Row(vhostRow(r)...)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 4 && row >= 0 && row < len(records) {
			if records[row].IsValidHost {
				return validStyle
			}
			return invalidStyle
		}
		return cellStyle
	})
	return t.Render()
}

// newHostsCmd prints the host allow-list read from the hosts files.
func newHostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hosts",
		Short: "Print the host names found in the hosts files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts := vhost.ReadHosts(appConfig.Paths.HostsFiles()...)
			for _, h := range hosts {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), h); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// newExportCmd writes a snapshot of the rendered dashboard.
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [output-file]",
		Short: "Write a JSON snapshot of the rendered dashboard",
		Long: `Renders the dashboard and writes the page model, warnings and host validity
to a JSON file. A file name ending in '.zst' is Zstandard-compressed.

If no output file is specified, 'ampboard-snapshot-YYYY-MM-DD.json' is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := fmt.Sprintf("ampboard-snapshot-%s.json", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				outputFile = args[0]
			}
			page, err := buildPage(appConfig)
			if err != nil {
				return err
			}
			v, _, _ := resolveBuildVersion(nil)
			if err := export.WriteFile(outputFile, export.NewSnapshot(page, buildvars.VersionOrDefault(v))); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("export.written", outputFile))
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", buildvars.VersionOrDefault(v))
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
			langs := make([]string, 0)
			for code := range i18n.GetAvailableLocales() {
				langs = append(langs, code)
			}
			sort.Strings(langs)
			fmt.Fprintf(out, "languages: %s (active: %s)\n", strings.Join(langs, ", "), i18n.GetLang())
			return nil
		},
	}
}
