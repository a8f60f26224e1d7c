package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
)

var previewCmd = &cobra.Command{
	Use:   "preview <slug>",
	Short: "Render a published bio page as visitors see it",
	Long: `Fetch a page from the public (unauthenticated) surface and print it the
way a visitor's browser would order it. Useful for checking a page before
sharing the link.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		page, err := client.PublicBioPage(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		fmt.Print(renderPublicPage(page))
		return nil
	},
}

func renderPublicPage(page *api.PublicBioResponse) string {
	var b strings.Builder

	name := page.Slug
	if page.DisplayName != nil && *page.DisplayName != "" {
		name = *page.DisplayName
	}
	fmt.Fprintf(&b, "%s  (/%s)\n", name, page.Slug)
	if page.BioText != nil && *page.BioText != "" {
		fmt.Fprintf(&b, "%s\n", *page.BioText)
	}
	b.WriteString("\n")

	if len(page.Items) == 0 {
		b.WriteString("(no items)\n")
	}
	for _, item := range page.Items {
		switch item.Type {
		case api.ItemLink:
			fmt.Fprintf(&b, "  [link] %s -> %s\n", item.Link.Title, item.Link.URL)
		case api.ItemCard:
			gate := ""
			if item.Card.RequiresEmail {
				gate = " (email required)"
			}
			fmt.Fprintf(&b, "  [card] %s / %s%s\n", item.Card.Headline, item.Card.CTAText, gate)
		}
	}

	if len(page.SocialLinks) > 0 {
		b.WriteString("\n")
		for _, s := range page.SocialLinks {
			fmt.Fprintf(&b, "  @%s: %s\n", s.Platform, s.URL)
		}
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
