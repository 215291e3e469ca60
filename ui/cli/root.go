// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// root.go sets up the root command, configuration loading and the shared
// services every subcommand uses.

package cli

import (
	"fmt"
	"os"

	"github.com/ampboard/ampboard/internal/config"
	"github.com/ampboard/ampboard/internal/i18n"
	"github.com/ampboard/ampboard/internal/listing"
	"github.com/ampboard/ampboard/internal/logging"
	"github.com/ampboard/ampboard/internal/render"
	"github.com/ampboard/ampboard/internal/vhost"
	"github.com/spf13/cobra"
)

var cfgFile string
var verbose bool

// appConfig is populated by PersistentPreRunE before any subcommand runs.
var appConfig config.Config

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	logging.Setup(cmd.ErrOrStderr(), verbose)

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), optionalConfigPath)
	if err != nil {
		return fmt.Errorf("%s", i18n.T("config.error_load", err))
	}
	if appConfig.Language == "" {
		appConfig.Language = "en"
	}
	i18n.Init(appConfig.Language)
	logging.Debugf("cli: htdocs=%s profile=%s vhosts=%s", appConfig.Paths.Htdocs, appConfig.Paths.Profile, appConfig.Paths.VhostsFile())
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// services bundles what one processing run needs. A fresh value is built per
// command invocation so the vhost resolver and warning collector never leak
// between runs.
type services struct {
	resolver *vhost.Resolver
	dirs     listing.Root
}

func newServices(c config.Config) services {
	return services{
		resolver: vhost.NewResolver(c.Paths.VhostSource()),
		dirs:     listing.Root{Htdocs: c.Paths.Htdocs},
	}
}

// buildPage loads the profile and renders every column. Profile warnings
// come before the ones raised while rendering.
func buildPage(c config.Config) (render.Page, error) {
	profile, profileWarnings, err := config.LoadProfile(c.Paths.Profile)
	if err != nil {
		return render.Page{}, err
	}
	svc := newServices(c)
	page := render.New(profile.Templates, svc.resolver).Page(profile, svc.dirs)

	if len(profileWarnings) > 0 {
		var all render.Warnings
		all.Add(profileWarnings...)
		all.Add(page.Warnings...)
		page.Warnings = all.List()
	}
	for _, w := range page.Warnings {
		logging.Warnf("%s", w)
	}
	return page, nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ampboard",
		Short: "AMPBoard renders a dashboard of local development projects.",
		Long: `AMPBoard lists the project directories under your document root as
configurable columns of links. Column rules can rename entries with regular
expressions, hide entries without a trusted Apache virtual host, and render
each entry through a named HTML link template.

Running without a subcommand renders the dashboard (same as 'folders').`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolders(cmd, false)
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	defaults := config.Defaults()
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&cfgFile, "config", "", "config file")
	pf.String("language", defaults["language"].(string), `Message language ("en", "de")`)
	pf.String("paths.apache", "", "Apache installation root")
	pf.String("paths.htdocs", defaults["paths.htdocs"].(string), "Document root the column directories are relative to")
	pf.String("paths.vhosts", "", "Virtual host config file (default {apache}/conf/extra/httpd-vhosts.conf)")
	pf.String("paths.crt", "", "Per-host certificate directory (default {apache}/crt)")
	pf.StringSlice("paths.hosts", nil, "Hosts files to read (default: the OS hosts file)")
	pf.String("paths.profile", defaults["paths.profile"].(string), "Directory holding folders and link_templates files")

	cmd.AddCommand(
		newFoldersCmd(),
		newVhostsCmd(),
		newHostsCmd(),
		newExportCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return cmd
}
