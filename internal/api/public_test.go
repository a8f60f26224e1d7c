package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPublicBioPageDecodesMixedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public/bio/maria" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("public fetch sent Authorization header %q", got)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"slug":         "maria",
			"display_name": "Maria",
			"bio_text":     "Links below",
			"items": []map[string]any{
				{
					"type": "link", "item_id": "l1", "position": 0,
					"data": map[string]any{"id": "l1", "title": "Blog", "url": "https://blog.example"},
				},
				{
					"type": "card", "item_id": "c1", "position": 1,
					"data": map[string]any{"id": "c1", "headline": "Guide", "cta_text": "Get it", "requires_email": true},
				},
			},
			"social_links": []map[string]any{
				{"id": "s1", "platform": "instagram", "url": "https://instagram.com/maria"},
			},
		})
	}))
	defer srv.Close()

	page, err := testClient(t, srv.URL).PublicBioPage(context.Background(), "maria")
	if err != nil {
		t.Fatalf("PublicBioPage: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(page.Items))
	}
	if page.Items[0].Link == nil || page.Items[0].Card != nil {
		t.Errorf("item 0 should decode as a link, got %+v", page.Items[0])
	}
	if page.Items[0].Link.URL != "https://blog.example" {
		t.Errorf("link URL = %q", page.Items[0].Link.URL)
	}
	if page.Items[1].Card == nil || page.Items[1].Link != nil {
		t.Errorf("item 1 should decode as a card, got %+v", page.Items[1])
	}
	if !page.Items[1].Card.RequiresEmail {
		t.Error("card should require email")
	}
	if len(page.SocialLinks) != 1 || page.SocialLinks[0].Platform != PlatformInstagram {
		t.Errorf("social links = %+v", page.SocialLinks)
	}
}

func TestPublicBioPageRejectsUnknownItemType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"slug": "maria",
			"items": []map[string]any{
				{"type": "widget", "item_id": "w1", "position": 0, "data": map[string]any{}},
			},
		})
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).PublicBioPage(context.Background(), "maria")
	if err == nil {
		t.Fatal("expected decode error for unknown item type")
	}
}

func TestTrackLinkClickReturnsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public/bio/maria/click/l1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		writeJSON(w, http.StatusOK, map[string]any{"redirect_url": "https://blog.example"})
	}))
	defer srv.Close()

	resp, err := testClient(t, srv.URL).TrackLinkClick(context.Background(), "maria", "l1", TrackRequest{Referrer: "https://instagram.com"})
	if err != nil {
		t.Fatalf("TrackLinkClick: %v", err)
	}
	if resp.RedirectURL != "https://blog.example" {
		t.Errorf("redirect = %q", resp.RedirectURL)
	}
}
