// SPDX-License-Identifier: AGPL-3.0-or-later

/*
jiraref - a commit-msg linter that requires a Jira task reference such as (PROJ-123) in every commit header.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/jiraref/internal/config"
)

// NewRootCmd constructs the jiraref root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("JIRAREF_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "jiraref",
		Short:         "jiraref - Jira task references for commit messages",
		Long:          "jiraref checks that commit headers cite exactly one Jira task of the configured project, e.g. \"feat: add login (PROJ-123)\".",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().String("config", "", "path to config file (default: nearest .jiraref.yaml)")
	cmd.PersistentFlags().String("project-name", "", "Jira project key, overrides config and "+config.EnvProjectName)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of jiraref",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "jiraref version %s\n", version)
		},
	})
	cmd.AddCommand(NewLintCommand())
	cmd.AddCommand(NewRulesCommand())

	return cmd
}
