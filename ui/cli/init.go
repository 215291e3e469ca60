// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ampboard/ampboard/internal/config"
	"github.com/ampboard/ampboard/internal/i18n"
	"github.com/ampboard/ampboard/internal/model"
	"github.com/ampboard/ampboard/internal/render"
	"github.com/spf13/cobra"
)

// starterProfile lists the document root itself with the basic template.
func starterProfile() model.Profile {
	return model.Profile{
		Folders: []model.ColumnRule{{
			Title:        "Projects",
			Dir:          "",
			LinkTemplate: model.DefaultTemplateName,
		}},
		Templates: []model.Template{{
			Name: model.DefaultTemplateName,
			HTML: render.FallbackTemplateHTML,
		}},
	}
}

// newInitCmd persists the effective configuration and a starter profile.
func newInitCmd() *cobra.Command {
	var system, force bool
	var output string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and a starter profile",
		Long: `Writes the effective configuration (defaults, config file, environment and
flags merged) to the user config path, or the system path with --system, or
to --output. A starter profile with one column and the basic link template
is written to the profile directory.

Existing files are left alone unless --force is given.

Examples:
  # Persist the Apache location for later runs
  ampboard init --paths.apache /opt/lampp --paths.htdocs /opt/lampp/htdocs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := initConfig(out, output, system, force); err != nil {
				return err
			}
			return initProfile(out, appConfig.Paths.Profile, force)
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "Write the system-wide config instead of the user config")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the config to this file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func initConfig(out io.Writer, output string, system, force bool) error {
	path := output
	if path == "" {
		p, err := config.GetConfigPath(system)
		if err != nil {
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintln(out, i18n.T("init.config_exists", path))
		return nil
	}

	var err error
	if output != "" {
		err = config.WriteConfigFileTo(&appConfig, output)
	} else {
		err = config.WriteConfigFile(&appConfig, system)
	}
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintln(out, i18n.T("init.config_written", path))
	return nil
}

func initProfile(out io.Writer, dir string, force bool) error {
	if config.ProfileExists(dir) && !force {
		fmt.Fprintln(out, i18n.T("init.profile_exists", dir))
		return nil
	}
	if err := config.WriteProfile(dir, starterProfile()); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	fmt.Fprintln(out, i18n.T("init.profile_written", dir))
	return nil
}
