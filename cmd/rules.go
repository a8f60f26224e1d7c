package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
)

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage smart routing rules on a link",
}

var ruleListCmd = &cobra.Command{
	Use:   "list <link-id>",
	Short: "List a link's routing rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		rules, err := client.RoutingRules(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetching rules: %w", err)
		}
		if len(rules) == 0 {
			fmt.Println("No routing rules.")
			return nil
		}
		for _, r := range rules {
			state := "on"
			if !r.IsActive {
				state = "off"
			}
			fmt.Printf("%s  p%d  %-8s %s  -> %s  [%s]\n", r.ID, r.Priority, r.RuleType, formatRuleConfig(r.RuleConfig), r.DestinationURL, state)
		}
		return nil
	},
}

var ruleAddCmd = &cobra.Command{
	Use:   "add <link-id>",
	Short: "Add a routing rule to a link",
	Long: `Add a smart routing rule. Rule conditions are key=value pairs whose keys
depend on the type: country rules take countries=BR,US; device rules take
device=mobile|desktop; time rules take start/end hours.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleType, _ := cmd.Flags().GetString("type")
		dest, _ := cmd.Flags().GetString("url")
		priority, _ := cmd.Flags().GetInt("priority")
		pairs, _ := cmd.Flags().GetStringSlice("when")

		switch api.RuleType(ruleType) {
		case api.RuleCountry, api.RuleDevice, api.RuleTime:
		default:
			return fmt.Errorf("--type must be one of country, device, time")
		}
		if dest == "" {
			return fmt.Errorf("--url is required")
		}
		if err := validateHTTPURL(dest, "url"); err != nil {
			return err
		}
		config, err := parseRuleConfig(pairs)
		if err != nil {
			return err
		}

		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		rule, err := client.CreateRoutingRule(ctx, args[0], api.RoutingRuleCreate{
			RuleType:       api.RuleType(ruleType),
			RuleConfig:     config,
			DestinationURL: dest,
			Priority:       priority,
		})
		if err != nil {
			return fmt.Errorf("creating rule: %w", err)
		}
		fmt.Printf("Added %s rule %s.\n", rule.RuleType, rule.ID)
		return nil
	},
}

var ruleDeleteCmd = &cobra.Command{
	Use:   "delete <link-id> <rule-id>",
	Short: "Delete a routing rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		if err := client.DeleteRoutingRule(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("deleting rule: %w", err)
		}
		fmt.Println("Rule deleted.")
		return nil
	},
}

// parseRuleConfig turns repeated key=value flags into the rule_config object.
// Comma-separated values become arrays, matching what the backend stores for
// country lists.
func parseRuleConfig(pairs []string) (map[string]any, error) {
	config := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid --when %q, expected key=value", pair)
		}
		if strings.Contains(value, ",") {
			config[key] = strings.Split(value, ",")
		} else {
			config[key] = value
		}
	}
	if len(config) == 0 {
		return nil, fmt.Errorf("at least one --when key=value condition is required")
	}
	return config, nil
}

func formatRuleConfig(config map[string]any) string {
	if len(config) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(config))
	for k, v := range config {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}

func init() {
	ruleAddCmd.Flags().String("type", "", "rule type: country, device or time")
	ruleAddCmd.Flags().String("url", "", "alternate destination URL")
	ruleAddCmd.Flags().Int("priority", 0, "evaluation priority (lower first)")
	ruleAddCmd.Flags().StringSlice("when", nil, "rule condition as key=value (repeatable)")

	ruleCmd.AddCommand(ruleListCmd, ruleAddCmd, ruleDeleteCmd)
	rootCmd.AddCommand(ruleCmd)
}
