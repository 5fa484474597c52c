// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/config"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
)

// newConfigCmd creates the config command group
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOut {
				return NewJSONResponse("config show", a.cfg).Print(a.out)
			}
			_, err := fmt.Fprint(a.out, a.cfg.String())
			return err
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, p)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one value, e.g. defaults.format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return usageErrorf("%v (keys: %s)", err, strings.Join(config.Keys(), ", "))
			}
			if a.jsonOut {
				return NewJSONResponse("config get", v).Print(a.out)
			}
			fmt.Fprintln(a.out, v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one value and save the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.configFile()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(p)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return usageErrorf("%v", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
			}
			if err := config.SaveTOML(cfg, p); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s = %s\n", styles.Render(styles.Success, "Set"), args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(show, path, get, set)
	return cmd
}

// configFile returns --config or the default path.
func (a *app) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.ConfigPath()
}
