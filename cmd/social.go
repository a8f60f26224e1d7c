package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
)

var socialCmd = &cobra.Command{
	Use:   "social",
	Short: "Manage the bio page's social profile links",
}

func currentPageID(ctx context.Context, client *api.Client) (string, error) {
	pages, err := client.BioPages(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching bio page: %w", err)
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("no bio page yet; open the dashboard once to create it")
	}
	return pages[0].ID, nil
}

var socialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List social links",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		pageID, err := currentPageID(ctx, client)
		if err != nil {
			return err
		}
		links, err := client.SocialLinks(ctx, pageID)
		if err != nil {
			return fmt.Errorf("fetching social links: %w", err)
		}
		if len(links) == 0 {
			fmt.Println("No social links.")
			return nil
		}
		for _, l := range links {
			fmt.Printf("%s  %-10s %s\n", l.ID, l.Platform, l.URL)
		}
		return nil
	},
}

var socialAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a social link",
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")
		rawURL, _ := cmd.Flags().GetString("url")
		if platform == "" || rawURL == "" {
			return fmt.Errorf("--platform and --url are required")
		}
		if err := validateHTTPURL(rawURL, "url"); err != nil {
			return err
		}

		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		pageID, err := currentPageID(ctx, client)
		if err != nil {
			return err
		}
		link, err := client.CreateSocialLink(ctx, pageID, api.SocialLinkCreate{
			Platform: api.SocialPlatform(platform),
			URL:      rawURL,
		})
		if err != nil {
			return fmt.Errorf("creating social link: %w", err)
		}
		fmt.Printf("Added %s link (%s).\n", link.Platform, link.ID)
		return nil
	},
}

var socialDeleteCmd = &cobra.Command{
	Use:   "delete <link-id>",
	Short: "Delete a social link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		pageID, err := currentPageID(ctx, client)
		if err != nil {
			return err
		}
		if err := client.DeleteSocialLink(ctx, pageID, args[0]); err != nil {
			return fmt.Errorf("deleting social link: %w", err)
		}
		fmt.Println("Social link deleted.")
		return nil
	},
}

func init() {
	socialAddCmd.Flags().String("platform", "", "platform: instagram, twitter, youtube, tiktok, linkedin or website")
	socialAddCmd.Flags().String("url", "", "profile URL")

	socialCmd.AddCommand(socialListCmd, socialAddCmd, socialDeleteCmd)
	rootCmd.AddCommand(socialCmd)
}
