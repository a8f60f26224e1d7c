package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// The public surface serves published pages by slug with no authentication;
// it exists here so the TUI can preview a page exactly as visitors see it.

type PublicLink struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

type PublicCard struct {
	ID                 string  `json:"id"`
	BadgeText          *string `json:"badge_text"`
	Headline           string  `json:"headline"`
	Description        *string `json:"description"`
	BackgroundColor    string  `json:"background_color"`
	BackgroundImageURL *string `json:"background_image_url"`
	CTAText            string  `json:"cta_text"`
	RequiresEmail      bool    `json:"requires_email"`
}

type PublicPageItem struct {
	Type     ItemType
	ItemID   string
	Position int
	Link     *PublicLink
	Card     *PublicCard
}

func (p *PublicPageItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     ItemType        `json:"type"`
		ItemID   string          `json:"item_id"`
		Position int             `json:"position"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Type = raw.Type
	p.ItemID = raw.ItemID
	p.Position = raw.Position
	p.Link = nil
	p.Card = nil

	switch raw.Type {
	case ItemLink:
		p.Link = &PublicLink{}
		return json.Unmarshal(raw.Data, p.Link)
	case ItemCard:
		p.Card = &PublicCard{}
		return json.Unmarshal(raw.Data, p.Card)
	default:
		return fmt.Errorf("unknown page item type %q", raw.Type)
	}
}

type PublicSocialLink struct {
	ID       string         `json:"id"`
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

type PublicBioResponse struct {
	Slug            string             `json:"slug"`
	DisplayName     *string            `json:"display_name"`
	BioText         *string            `json:"bio_text"`
	ProfileImageURL *string            `json:"profile_image_url"`
	ThemeConfig     *ThemeConfig       `json:"theme_config"`
	Items           []PublicPageItem   `json:"items"`
	SocialLinks     []PublicSocialLink `json:"social_links"`
}

type TrackRequest struct {
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

type ClickResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type CardSubmitResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

func (c *Client) PublicBioPage(ctx context.Context, slug string) (*PublicBioResponse, error) {
	var out PublicBioResponse
	if err := c.publicGet(ctx, "/public/bio/"+slug, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TrackPageView(ctx context.Context, slug string, req TrackRequest) error {
	return c.publicPost(ctx, "/public/bio/"+slug+"/view", req, nil)
}

func (c *Client) TrackLinkClick(ctx context.Context, slug, linkID string, req TrackRequest) (*ClickResponse, error) {
	var out ClickResponse
	if err := c.publicPost(ctx, "/public/bio/"+slug+"/click/"+linkID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitCardLead(ctx context.Context, slug, cardID, email string) (*CardSubmitResponse, error) {
	var out CardSubmitResponse
	body := map[string]string{"email": email}
	if err := c.publicPost(ctx, "/public/bio/"+slug+"/card/"+cardID+"/submit", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
