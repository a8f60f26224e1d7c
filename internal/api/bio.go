package api

import (
	"context"
	"encoding/json"
	"fmt"
)

type ThemeConfig struct {
	BackgroundColor string `json:"background_color,omitempty"`
	ButtonColor     string `json:"button_color,omitempty"`
	ButtonTextColor string `json:"button_text_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	FontFamily      string `json:"font_family,omitempty"`
}

type BioPage struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"user_id"`
	InstagramAccountID *string      `json:"instagram_account_id"`
	Slug               string       `json:"slug"`
	DisplayName        *string      `json:"display_name"`
	BioText            *string      `json:"bio_text"`
	ProfileImageURL    *string      `json:"profile_image_url"`
	ThemeConfig        *ThemeConfig `json:"theme_config"`
	IsPublished        bool         `json:"is_published"`
	SEOTitle           *string      `json:"seo_title"`
	SEODescription     *string      `json:"seo_description"`
	OGImageURL         *string      `json:"og_image_url"`
	CreatedAt          string       `json:"created_at"`
	UpdatedAt          string       `json:"updated_at"`
}

type BioPageCreate struct {
	Slug string `json:"slug,omitempty"` // auto-generated when empty
}

type BioPageUpdate struct {
	Slug            *string           `json:"slug,omitempty"`
	DisplayName     *string           `json:"display_name,omitempty"`
	BioText         *string           `json:"bio_text,omitempty"`
	ProfileImageURL *string           `json:"profile_image_url,omitempty"`
	ThemeConfig     *ThemeConfig      `json:"theme_config,omitempty"`
	SEOTitle        *string           `json:"seo_title,omitempty"`
	SEODescription  *string           `json:"seo_description,omitempty"`
	OGImageURL      *string           `json:"og_image_url,omitempty"`
	SocialLinks     []SocialLinkInput `json:"social_links,omitempty"`
}

type LinkType string

const (
	LinkStandard LinkType = "standard"
	LinkSmart    LinkType = "smart"
)

type BioLink struct {
	ID           string   `json:"id"`
	BioPageID    string   `json:"bio_page_id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	LinkType     LinkType `json:"link_type"`
	Position     int      `json:"position"`
	IsActive     bool     `json:"is_active"`
	VisibleFrom  *string  `json:"visible_from"`
	VisibleUntil *string  `json:"visible_until"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type BioLinkCreate struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	LinkType     LinkType `json:"link_type,omitempty"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	VisibleFrom  *string  `json:"visible_from,omitempty"`
	VisibleUntil *string  `json:"visible_until,omitempty"`
}

type BioLinkUpdate struct {
	Title        *string  `json:"title,omitempty"`
	URL          *string  `json:"url,omitempty"`
	LinkType     LinkType `json:"link_type,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	VisibleFrom  *string  `json:"visible_from,omitempty"`
	VisibleUntil *string  `json:"visible_until,omitempty"`
}

type BioCard struct {
	ID                 string  `json:"id"`
	BioPageID          string  `json:"bio_page_id"`
	BadgeText          *string `json:"badge_text"`
	Headline           string  `json:"headline"`
	Description        *string `json:"description"`
	BackgroundColor    string  `json:"background_color"`
	BackgroundImageURL *string `json:"background_image_url"`
	CTAText            string  `json:"cta_text"`
	DestinationURL     string  `json:"destination_url"`
	SuccessMessage     *string `json:"success_message"`
	RequiresEmail      bool    `json:"requires_email"`
	Position           int     `json:"position"`
	IsActive           bool    `json:"is_active"`
	VisibleFrom        *string `json:"visible_from"`
	VisibleUntil       *string `json:"visible_until"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type BioCardCreate struct {
	BadgeText          *string `json:"badge_text,omitempty"`
	Headline           string  `json:"headline"`
	Description        *string `json:"description,omitempty"`
	BackgroundColor    string  `json:"background_color,omitempty"`
	BackgroundImageURL *string `json:"background_image_url,omitempty"`
	CTAText            string  `json:"cta_text"`
	DestinationURL     string  `json:"destination_url"`
	SuccessMessage     *string `json:"success_message,omitempty"`
	RequiresEmail      bool    `json:"requires_email,omitempty"`
	VisibleFrom        *string `json:"visible_from,omitempty"`
	VisibleUntil       *string `json:"visible_until,omitempty"`
}

type BioCardUpdate struct {
	BadgeText          *string `json:"badge_text,omitempty"`
	Headline           *string `json:"headline,omitempty"`
	Description        *string `json:"description,omitempty"`
	BackgroundColor    *string `json:"background_color,omitempty"`
	BackgroundImageURL *string `json:"background_image_url,omitempty"`
	CTAText            *string `json:"cta_text,omitempty"`
	DestinationURL     *string `json:"destination_url,omitempty"`
	SuccessMessage     *string `json:"success_message,omitempty"`
	RequiresEmail      *bool   `json:"requires_email,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
	VisibleFrom        *string `json:"visible_from,omitempty"`
	VisibleUntil       *string `json:"visible_until,omitempty"`
}

// ItemType discriminates the two kinds of orderable page items.
type ItemType string

const (
	ItemLink ItemType = "link"
	ItemCard ItemType = "card"
)

// PageItem is one entry in a page's ordered item list. Exactly one of Link
// or Card is set, according to Type.
type PageItem struct {
	Type     ItemType
	ItemID   string
	Position int
	Link     *BioLink
	Card     *BioCard
}

func (p *PageItem) UnmarshalJSON(data []byte) error {
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
		p.Link = &BioLink{}
		return json.Unmarshal(raw.Data, p.Link)
	case ItemCard:
		p.Card = &BioCard{}
		return json.Unmarshal(raw.Data, p.Card)
	default:
		return fmt.Errorf("unknown page item type %q", raw.Type)
	}
}

// Active reports the item's is_active flag regardless of kind.
func (p *PageItem) Active() bool {
	switch p.Type {
	case ItemLink:
		return p.Link.IsActive
	case ItemCard:
		return p.Card.IsActive
	}
	return false
}

// SetActive flips the item's is_active flag in place.
func (p *PageItem) SetActive(active bool) {
	switch p.Type {
	case ItemLink:
		p.Link.IsActive = active
	case ItemCard:
		p.Card.IsActive = active
	}
}

// Title returns the display label for the item.
func (p *PageItem) Title() string {
	switch p.Type {
	case ItemLink:
		return p.Link.Title
	case ItemCard:
		return p.Card.Headline
	}
	return ""
}

// ReorderItem is one (type, id, position) triple of a bulk reorder snapshot.
type ReorderItem struct {
	Type     ItemType `json:"type"`
	ItemID   string   `json:"item_id"`
	Position int      `json:"position"`
}

// ---- Bio pages ----

func (c *Client) BioPages(ctx context.Context) ([]BioPage, error) {
	var out []BioPage
	if err := c.get(ctx, "/bio-pages", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BioPage(ctx context.Context, id string) (*BioPage, error) {
	var p BioPage
	if err := c.get(ctx, "/bio-pages/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateBioPage(ctx context.Context, in BioPageCreate) (*BioPage, error) {
	var p BioPage
	if err := c.post(ctx, "/bio-pages", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateBioPage(ctx context.Context, id string, in BioPageUpdate) (*BioPage, error) {
	var p BioPage
	if err := c.put(ctx, "/bio-pages/"+id, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteBioPage(ctx context.Context, id string) error {
	return c.del(ctx, "/bio-pages/"+id)
}

func (c *Client) PublishBioPage(ctx context.Context, id string) (*BioPage, error) {
	var p BioPage
	if err := c.post(ctx, "/bio-pages/"+id+"/publish", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UnpublishBioPage(ctx context.Context, id string) (*BioPage, error) {
	var p BioPage
	if err := c.post(ctx, "/bio-pages/"+id+"/unpublish", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ---- Links ----

func (c *Client) BioLinks(ctx context.Context, pageID string) ([]BioLink, error) {
	var out []BioLink
	if err := c.get(ctx, "/bio-pages/"+pageID+"/links", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBioLink(ctx context.Context, pageID string, in BioLinkCreate) (*BioLink, error) {
	var l BioLink
	if err := c.post(ctx, "/bio-pages/"+pageID+"/links", in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) UpdateBioLink(ctx context.Context, pageID, linkID string, in BioLinkUpdate) (*BioLink, error) {
	var l BioLink
	if err := c.put(ctx, "/bio-pages/"+pageID+"/links/"+linkID, in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) DeleteBioLink(ctx context.Context, pageID, linkID string) error {
	return c.del(ctx, "/bio-pages/"+pageID+"/links/"+linkID)
}

// ---- Cards ----

func (c *Client) BioCards(ctx context.Context, pageID string) ([]BioCard, error) {
	var out []BioCard
	if err := c.get(ctx, "/bio-pages/"+pageID+"/cards", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBioCard(ctx context.Context, pageID string, in BioCardCreate) (*BioCard, error) {
	var card BioCard
	if err := c.post(ctx, "/bio-pages/"+pageID+"/cards", in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) UpdateBioCard(ctx context.Context, pageID, cardID string, in BioCardUpdate) (*BioCard, error) {
	var card BioCard
	if err := c.put(ctx, "/bio-pages/"+pageID+"/cards/"+cardID, in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteBioCard(ctx context.Context, pageID, cardID string) error {
	return c.del(ctx, "/bio-pages/"+pageID+"/cards/"+cardID)
}

// ---- Page items / ordering ----

func (c *Client) PageItems(ctx context.Context, pageID string) ([]PageItem, error) {
	var out struct {
		Items []PageItem `json:"items"`
	}
	if err := c.get(ctx, "/bio-pages/"+pageID+"/items", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ReorderPageItems persists a full ordering snapshot. The server treats the
// snapshot as authoritative, so concurrent reorders are last-write-wins.
func (c *Client) ReorderPageItems(ctx context.Context, pageID string, items []ReorderItem) error {
	body := map[string][]ReorderItem{"items": items}
	return c.put(ctx, "/bio-pages/"+pageID+"/items/reorder", body, nil)
}

// ---- Routing rules ----

type RuleType string

const (
	RuleCountry RuleType = "country"
	RuleDevice  RuleType = "device"
	RuleTime    RuleType = "time"
)

type RoutingRule struct {
	ID             string         `json:"id"`
	BioLinkID      string         `json:"bio_link_id"`
	RuleType       RuleType       `json:"rule_type"`
	RuleConfig     map[string]any `json:"rule_config"`
	DestinationURL string         `json:"destination_url"`
	Priority       int            `json:"priority"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

type RoutingRuleCreate struct {
	RuleType       RuleType       `json:"rule_type"`
	RuleConfig     map[string]any `json:"rule_config"`
	DestinationURL string         `json:"destination_url"`
	Priority       int            `json:"priority,omitempty"`
}

type RoutingRuleUpdate struct {
	RuleType       RuleType       `json:"rule_type,omitempty"`
	RuleConfig     map[string]any `json:"rule_config,omitempty"`
	DestinationURL *string        `json:"destination_url,omitempty"`
	Priority       *int           `json:"priority,omitempty"`
	IsActive       *bool          `json:"is_active,omitempty"`
}

func (c *Client) RoutingRules(ctx context.Context, linkID string) ([]RoutingRule, error) {
	var out []RoutingRule
	if err := c.get(ctx, "/bio-links/"+linkID+"/rules", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRoutingRule(ctx context.Context, linkID string, in RoutingRuleCreate) (*RoutingRule, error) {
	var r RoutingRule
	if err := c.post(ctx, "/bio-links/"+linkID+"/rules", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UpdateRoutingRule(ctx context.Context, linkID, ruleID string, in RoutingRuleUpdate) (*RoutingRule, error) {
	var r RoutingRule
	if err := c.put(ctx, "/bio-links/"+linkID+"/rules/"+ruleID, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteRoutingRule(ctx context.Context, linkID, ruleID string) error {
	return c.del(ctx, "/bio-links/"+linkID+"/rules/"+ruleID)
}

// ---- Social links ----

type SocialPlatform string

const (
	PlatformInstagram SocialPlatform = "instagram"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformYouTube   SocialPlatform = "youtube"
	PlatformTikTok    SocialPlatform = "tiktok"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformWebsite   SocialPlatform = "website"
)

type SocialLink struct {
	ID        string         `json:"id"`
	BioPageID string         `json:"bio_page_id"`
	Platform  SocialPlatform `json:"platform"`
	URL       string         `json:"url"`
	Position  int            `json:"position"`
	IsActive  bool           `json:"is_active"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

type SocialLinkCreate struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

type SocialLinkUpdate struct {
	URL      *string `json:"url,omitempty"`
	Position *int    `json:"position,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// SocialLinkInput is the embedded form used by BioPageUpdate; ID is empty
// for links being created as part of the page update.
type SocialLinkInput struct {
	ID       string         `json:"id,omitempty"`
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
	IsActive *bool          `json:"is_active,omitempty"`
}

func (c *Client) SocialLinks(ctx context.Context, pageID string) ([]SocialLink, error) {
	var out []SocialLink
	if err := c.get(ctx, "/bio-pages/"+pageID+"/social-links", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSocialLink(ctx context.Context, pageID string, in SocialLinkCreate) (*SocialLink, error) {
	var s SocialLink
	if err := c.post(ctx, "/bio-pages/"+pageID+"/social-links", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSocialLink(ctx context.Context, pageID, linkID string, in SocialLinkUpdate) (*SocialLink, error) {
	var s SocialLink
	if err := c.put(ctx, "/bio-pages/"+pageID+"/social-links/"+linkID, in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteSocialLink(ctx context.Context, pageID, linkID string) error {
	return c.del(ctx, "/bio-pages/"+pageID+"/social-links/"+linkID)
}
