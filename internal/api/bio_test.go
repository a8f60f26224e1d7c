package api

import (
	"encoding/json"
	"testing"
)

func TestPageItemUnmarshalLink(t *testing.T) {
	raw := `{
		"type": "link",
		"item_id": "l1",
		"position": 0,
		"data": {"id": "l1", "title": "My Shop", "url": "https://shop.example", "link_type": "standard", "position": 0, "is_active": true}
	}`
	var item PageItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Type != ItemLink {
		t.Errorf("type = %q", item.Type)
	}
	if item.Link == nil || item.Card != nil {
		t.Fatal("expected link payload only")
	}
	if item.Link.Title != "My Shop" {
		t.Errorf("title = %q", item.Link.Title)
	}
	if item.Title() != "My Shop" {
		t.Errorf("Title() = %q", item.Title())
	}
}

func TestPageItemUnmarshalCard(t *testing.T) {
	raw := `{
		"type": "card",
		"item_id": "c1",
		"position": 2,
		"data": {"id": "c1", "headline": "Free Guide", "cta_text": "Get it", "destination_url": "https://x.example", "requires_email": true, "position": 2, "is_active": false}
	}`
	var item PageItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Type != ItemCard || item.Card == nil || item.Link != nil {
		t.Fatal("expected card payload only")
	}
	if item.Active() {
		t.Error("expected inactive card")
	}
	if item.Title() != "Free Guide" {
		t.Errorf("Title() = %q", item.Title())
	}
}

func TestPageItemUnmarshalUnknownKind(t *testing.T) {
	raw := `{"type": "video", "item_id": "v1", "position": 0, "data": {}}`
	var item PageItem
	if err := json.Unmarshal([]byte(raw), &item); err == nil {
		t.Error("expected error for unknown item type")
	}
}

func TestSetActiveFlipsCorrectKind(t *testing.T) {
	link := PageItem{Type: ItemLink, Link: &BioLink{IsActive: true}}
	link.SetActive(false)
	if link.Link.IsActive {
		t.Error("expected link deactivated")
	}

	card := PageItem{Type: ItemCard, Card: &BioCard{IsActive: false}}
	card.SetActive(true)
	if !card.Card.IsActive {
		t.Error("expected card activated")
	}
}

func TestErrorMessageParsing(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"detail payload", `{"detail": "slug already taken"}`, 422, "slug already taken"},
		{"plain text", "gateway timeout", 504, "gateway timeout"},
		{"empty body", "", 500, "Internal Server Error"},
		{"non-detail json", `{"error": "x"}`, 400, `{"error": "x"}`},
	}
	for _, tt := range tests {
		if got := errorMessage([]byte(tt.body), tt.status); got != tt.want {
			t.Errorf("%s: errorMessage = %q, want %q", tt.name, got, tt.want)
		}
	}
}
