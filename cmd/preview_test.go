package cmd

import (
	"strings"
	"testing"

	"github.com/shivakharbanda/cm-front/internal/api"
)

func TestRenderPublicPage(t *testing.T) {
	name := "Maria"
	bio := "Creator and educator"
	page := &api.PublicBioResponse{
		Slug:        "maria",
		DisplayName: &name,
		BioText:     &bio,
		Items: []api.PublicPageItem{
			{Type: api.ItemLink, ItemID: "l1", Link: &api.PublicLink{Title: "Blog", URL: "https://blog.example"}},
			{Type: api.ItemCard, ItemID: "c1", Card: &api.PublicCard{Headline: "Free guide", CTAText: "Download", RequiresEmail: true}},
		},
		SocialLinks: []api.PublicSocialLink{
			{Platform: api.PlatformInstagram, URL: "https://instagram.com/maria"},
		},
	}

	out := renderPublicPage(page)
	for _, want := range []string{
		"Maria  (/maria)",
		"Creator and educator",
		"[link] Blog -> https://blog.example",
		"[card] Free guide / Download (email required)",
		"@instagram: https://instagram.com/maria",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPublicPageEmpty(t *testing.T) {
	out := renderPublicPage(&api.PublicBioResponse{Slug: "empty"})
	if !strings.Contains(out, "empty  (/empty)") {
		t.Errorf("header missing slug fallback:\n%s", out)
	}
	if !strings.Contains(out, "(no items)") {
		t.Errorf("empty page should say so:\n%s", out)
	}
}
