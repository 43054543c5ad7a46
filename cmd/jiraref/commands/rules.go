package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/jiraref/cmd/jiraref/internal/clierr"
	"github.com/bartekus/jiraref/internal/config"
	"github.com/bartekus/jiraref/internal/rule"
	"github.com/bartekus/jiraref/internal/rules"
)

type RuleListItem struct {
	Name  string     `json:"name"`
	Level rule.Level `json:"level"`
	When  rule.When  `json:"when,omitempty"`
	Value any        `json:"value,omitempty"`
}

// NewRulesCommand returns the `jiraref rules` command.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List known rules and their effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			cfg, err := config.Resolve(cmd.Context(), cmd.Flags(), wd)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "loading config", err)
			}

			var items []RuleListItem
			for _, r := range rules.Registry() {
				s := cfg.Rules[r.Name()]
				items = append(items, RuleListItem{Name: r.Name(), Level: s.Level, When: s.When, Value: s.Value})
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			for _, it := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", it.Name, it.Level)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output in JSON")
	return cmd
}
