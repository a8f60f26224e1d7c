package cmd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
	"github.com/shivakharbanda/cm-front/internal/pagelist"
)

// loadedList builds a controller with the user's page and item list loaded.
func loadedList(ctx context.Context) (*pagelist.Controller, error) {
	client, _, _, err := newClient()
	if err != nil {
		return nil, err
	}
	list := pagelist.New(client)
	if err := list.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading bio page: %w", err)
	}
	return list, nil
}

func validateHTTPURL(raw, flag string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("--%s must be an http(s) URL", flag)
	}
	return nil
}

// stringFlagPtr returns the flag value as a pointer when it was set on the
// command line, nil otherwise, so omitted flags stay omitted on the wire.
func stringFlagPtr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage bio page links",
}

var linkAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a link to the bio page",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		rawURL, _ := cmd.Flags().GetString("url")
		if title == "" || rawURL == "" {
			return fmt.Errorf("--title and --url are required")
		}
		if err := validateHTTPURL(rawURL, "url"); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		list, err := loadedList(ctx)
		if err != nil {
			return err
		}
		link, err := list.CreateLink(ctx, api.BioLinkCreate{
			Title:        title,
			URL:          rawURL,
			ThumbnailURL: stringFlagPtr(cmd, "thumbnail"),
		})
		if err != nil {
			return fmt.Errorf("creating link: %w", err)
		}
		fmt.Printf("Added link %q (%s) at position %d.\n", link.Title, link.ID, len(list.Items())-1)
		return nil
	},
}

var linkEditCmd = &cobra.Command{
	Use:   "edit <link-id>",
	Short: "Edit a link's title or URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := api.BioLinkUpdate{
			Title: stringFlagPtr(cmd, "title"),
			URL:   stringFlagPtr(cmd, "url"),
		}
		if in.Title == nil && in.URL == nil {
			return fmt.Errorf("nothing to change: pass --title or --url")
		}
		if in.URL != nil {
			if err := validateHTTPURL(*in.URL, "url"); err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		list, err := loadedList(ctx)
		if err != nil {
			return err
		}
		link, err := list.UpdateLink(ctx, args[0], in)
		if err != nil {
			return fmt.Errorf("updating link: %w", err)
		}
		fmt.Printf("Updated link %q.\n", link.Title)
		return nil
	},
}

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage lead-capture cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a lead-capture card to the bio page",
	RunE: func(cmd *cobra.Command, args []string) error {
		headline, _ := cmd.Flags().GetString("headline")
		cta, _ := cmd.Flags().GetString("cta")
		dest, _ := cmd.Flags().GetString("url")
		if headline == "" || cta == "" || dest == "" {
			return fmt.Errorf("--headline, --cta and --url are required")
		}
		if err := validateHTTPURL(dest, "url"); err != nil {
			return err
		}
		requiresEmail, _ := cmd.Flags().GetBool("requires-email")

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		list, err := loadedList(ctx)
		if err != nil {
			return err
		}
		card, err := list.CreateCard(ctx, api.BioCardCreate{
			Headline:       headline,
			CTAText:        cta,
			DestinationURL: dest,
			BadgeText:      stringFlagPtr(cmd, "badge"),
			Description:    stringFlagPtr(cmd, "description"),
			RequiresEmail:  requiresEmail,
		})
		if err != nil {
			return fmt.Errorf("creating card: %w", err)
		}
		fmt.Printf("Added card %q (%s) at position %d.\n", card.Headline, card.ID, len(list.Items())-1)
		return nil
	},
}

var cardEditCmd = &cobra.Command{
	Use:   "edit <card-id>",
	Short: "Edit a card's copy or destination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := api.BioCardUpdate{
			Headline:       stringFlagPtr(cmd, "headline"),
			CTAText:        stringFlagPtr(cmd, "cta"),
			DestinationURL: stringFlagPtr(cmd, "url"),
			BadgeText:      stringFlagPtr(cmd, "badge"),
			Description:    stringFlagPtr(cmd, "description"),
		}
		if in.Headline == nil && in.CTAText == nil && in.DestinationURL == nil && in.BadgeText == nil && in.Description == nil {
			return fmt.Errorf("nothing to change")
		}
		if in.DestinationURL != nil {
			if err := validateHTTPURL(*in.DestinationURL, "url"); err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		list, err := loadedList(ctx)
		if err != nil {
			return err
		}
		card, err := list.UpdateCard(ctx, args[0], in)
		if err != nil {
			return fmt.Errorf("updating card: %w", err)
		}
		fmt.Printf("Updated card %q.\n", card.Headline)
		return nil
	},
}

var pageSetCmd = &cobra.Command{
	Use:   "page",
	Short: "Update bio page profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := api.BioPageUpdate{
			Slug:        stringFlagPtr(cmd, "slug"),
			DisplayName: stringFlagPtr(cmd, "name"),
			BioText:     stringFlagPtr(cmd, "bio"),
		}
		if in.Slug == nil && in.DisplayName == nil && in.BioText == nil {
			return fmt.Errorf("nothing to change: pass --slug, --name or --bio")
		}

		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		pages, err := client.BioPages(ctx)
		if err != nil {
			return fmt.Errorf("fetching bio page: %w", err)
		}
		if len(pages) == 0 {
			return fmt.Errorf("no bio page yet; open the dashboard once to create it")
		}

		page, err := client.UpdateBioPage(ctx, pages[0].ID, in)
		if err != nil {
			return fmt.Errorf("updating page: %w", err)
		}
		fmt.Printf("Updated page /%s.\n", page.Slug)
		return nil
	},
}

func init() {
	linkAddCmd.Flags().String("title", "", "link title (required)")
	linkAddCmd.Flags().String("url", "", "destination URL (required)")
	linkAddCmd.Flags().String("thumbnail", "", "thumbnail image URL")
	linkEditCmd.Flags().String("title", "", "new title")
	linkEditCmd.Flags().String("url", "", "new destination URL")
	linkCmd.AddCommand(linkAddCmd, linkEditCmd)

	cardAddCmd.Flags().String("headline", "", "card headline (required)")
	cardAddCmd.Flags().String("cta", "", "call-to-action button text (required)")
	cardAddCmd.Flags().String("url", "", "destination URL (required)")
	cardAddCmd.Flags().String("badge", "", "badge text")
	cardAddCmd.Flags().String("description", "", "card body text")
	cardAddCmd.Flags().Bool("requires-email", false, "gate the destination behind an email form")
	cardEditCmd.Flags().String("headline", "", "new headline")
	cardEditCmd.Flags().String("cta", "", "new call-to-action text")
	cardEditCmd.Flags().String("url", "", "new destination URL")
	cardEditCmd.Flags().String("badge", "", "new badge text")
	cardEditCmd.Flags().String("description", "", "new body text")
	cardCmd.AddCommand(cardAddCmd, cardEditCmd)

	pageSetCmd.Flags().String("slug", "", "page slug")
	pageSetCmd.Flags().String("name", "", "display name")
	pageSetCmd.Flags().String("bio", "", "bio text")

	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(pageSetCmd)
}
