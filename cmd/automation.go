package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
)

var automationCmd = &cobra.Command{
	Use:   "automation",
	Short: "Manage comment-to-DM automations",
}

var automationCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an automation on a post",
	Long: `Create a comment-to-DM automation. Pick the post ID from "cm posts"; the
automation starts inactive, toggle it from the dashboard or the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		postID, _ := cmd.Flags().GetString("post")
		trigger, _ := cmd.Flags().GetString("trigger")
		keywords, _ := cmd.Flags().GetStringSlice("keyword")
		message, _ := cmd.Flags().GetString("message")

		if name == "" || postID == "" || message == "" {
			return fmt.Errorf("--name, --post and --message are required")
		}
		switch api.TriggerType(trigger) {
		case api.TriggerAllComments:
			if len(keywords) > 0 {
				return fmt.Errorf("--keyword only applies to --trigger keyword")
			}
		case api.TriggerKeyword:
			if len(keywords) == 0 {
				return fmt.Errorf("--trigger keyword needs at least one --keyword")
			}
		default:
			return fmt.Errorf("--trigger must be all_comments or keyword")
		}

		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		account, err := client.InstagramAccount(ctx)
		if err != nil {
			return fmt.Errorf("checking account: %w", err)
		}
		if account == nil {
			return fmt.Errorf("no Instagram account connected; run: cm connect")
		}

		auto, err := client.CreateAutomation(ctx, api.AutomationCreate{
			InstagramAccountID: account.ID,
			Name:               name,
			PostID:             postID,
			TriggerType:        api.TriggerType(trigger),
			Keywords:           keywords,
			DMMessageTemplate:  message,
		})
		if err != nil {
			return fmt.Errorf("creating automation: %w", err)
		}
		fmt.Printf("Created automation %q (%s).\n", auto.Name, auto.ID)
		return nil
	},
}

var automationDeleteCmd = &cobra.Command{
	Use:   "delete <automation-id>",
	Short: "Delete an automation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		if err := client.DeleteAutomation(ctx, args[0]); err != nil {
			return fmt.Errorf("deleting automation: %w", err)
		}
		fmt.Println("Automation deleted.")
		return nil
	},
}

func init() {
	automationCreateCmd.Flags().String("name", "", "automation name (required)")
	automationCreateCmd.Flags().String("post", "", "Instagram post ID to watch (required)")
	automationCreateCmd.Flags().String("trigger", "all_comments", "trigger: all_comments or keyword")
	automationCreateCmd.Flags().StringSlice("keyword", nil, "trigger keyword (repeatable, keyword trigger only)")
	automationCreateCmd.Flags().String("message", "", "DM message template (required)")

	automationCmd.AddCommand(automationCreateCmd, automationDeleteCmd)
	rootCmd.AddCommand(automationCmd)
}
