package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// addPlaybookCommands adds the playbook strategy management group.
func addPlaybookCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "playbook",
		Short: "Manage playbook strategies and their rules",
	}

	cmd.AddCommand(newPlaybookAddCmd(app))
	cmd.AddCommand(newPlaybookListCmd(app))

	rootCmd.AddCommand(cmd)
}

func newPlaybookAddCmd(app *App) *cobra.Command {
	var (
		id    string
		rules []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create or replace a playbook strategy",
		Long: "Create a strategy with its rule checklist. Each --rule takes the form\n" +
			"phase:text or phase!:text, where phase is before, during or after and\n" +
			"the bang marks the rule as required.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			strategy := models.Strategy{ID: id, Name: args[0]}
			for _, spec := range rules {
				rule, err := parseRuleSpec(spec)
				if err != nil {
					return err
				}
				strategy.Rules = append(strategy.Rules, rule)
			}

			if err := app.Store.SaveStrategy(cmd.Context(), &strategy); err != nil {
				return fmt.Errorf("failed to save strategy: %w", err)
			}
			output.Success("Saved strategy %q (%s) with %d rules", strategy.Name,
				shortID(strategy.ID), len(strategy.Rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Strategy ID to replace (default mints a new one)")
	cmd.Flags().StringArrayVar(&rules, "rule", nil, "Rule spec, repeatable (e.g. \"before!:Trend up on H1\")")
	return cmd
}

func newPlaybookListCmd(app *App) *cobra.Command {
	var strategyID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List playbook strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			var strategies []models.Strategy
			if strategyID != "" {
				strategy, err := app.Store.GetStrategy(cmd.Context(), strategyID)
				if err != nil {
					if apperrors.Is(err, apperrors.ErrStrategyNotFound) {
						output.Error("No strategy with ID %s.", strategyID)
					}
					return err
				}
				strategies = []models.Strategy{strategy}
			} else {
				var err error
				strategies, err = app.Store.GetStrategies(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to fetch strategies: %w", err)
				}
			}

			if output.IsJSON() {
				return output.JSON(strategies)
			}
			if len(strategies) == 0 {
				output.Info("No strategies in the playbook yet.")
				return nil
			}

			for _, s := range strategies {
				output.Bold("%s (%s)", s.Name, shortID(s.ID))
				for _, r := range s.Rules {
					marker := " "
					if r.Required {
						marker = "*"
					}
					output.Printf("  %s [%-6s] %s\n", marker, r.Phase, r.Text)
				}
				output.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyID, "id", "", "Show a single strategy by ID")
	return cmd
}

// parseRuleSpec parses "phase:text" with an optional bang after the
// phase marking the rule as required.
func parseRuleSpec(spec string) (models.Rule, error) {
	phase, text, ok := strings.Cut(spec, ":")
	if !ok || text == "" {
		return models.Rule{}, fmt.Errorf("invalid rule %q, want phase:text", spec)
	}

	var rule models.Rule
	if strings.HasSuffix(phase, "!") {
		rule.Required = true
		phase = strings.TrimSuffix(phase, "!")
	}
	rule.Phase = models.RulePhase(strings.ToLower(strings.TrimSpace(phase)))
	if !rule.Phase.Valid() {
		return models.Rule{}, fmt.Errorf("unknown rule phase %q, want before, during or after", phase)
	}
	rule.Text = strings.TrimSpace(text)
	return rule, nil
}
