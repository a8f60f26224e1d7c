package api

import (
	"context"
	"net/url"
	"strconv"
)

// AnalyticsParams bounds an analytics query. All fields optional; dates are
// YYYY-MM-DD and period is one of 7d/30d/90d.
type AnalyticsParams struct {
	StartDate string
	EndDate   string
	Period    string
}

func (p AnalyticsParams) values() url.Values {
	v := url.Values{}
	if p.StartDate != "" {
		v.Set("start_date", p.StartDate)
	}
	if p.EndDate != "" {
		v.Set("end_date", p.EndDate)
	}
	if p.Period != "" {
		v.Set("period", p.Period)
	}
	return v
}

// PageAnalytics holds day-granular series; missing days are simply absent
// points, the series is date-ascending.
type PageAnalytics struct {
	TotalViews          int         `json:"total_views"`
	TotalClicks         int         `json:"total_clicks"`
	CTR                 float64     `json:"ctr"`
	ViewsByDate         []DatePoint `json:"views_by_date"`
	ClicksByDate        []DatePoint `json:"clicks_by_date"`
	ViewsChangePercent  *float64    `json:"views_change_percent,omitempty"`
	ClicksChangePercent *float64    `json:"clicks_change_percent,omitempty"`
}

type LinkAnalytics struct {
	LinkID       string  `json:"link_id"`
	Title        string  `json:"title"`
	Clicks       int     `json:"clicks"`
	UniqueClicks int     `json:"unique_clicks"`
	CTR          float64 `json:"ctr"`
}

type CardAnalytics struct {
	CardID         string  `json:"card_id"`
	Headline       string  `json:"headline"`
	Views          int     `json:"views"`
	Submissions    int     `json:"submissions"`
	ConversionRate float64 `json:"conversion_rate"`
}

type ItemAnalytics struct {
	Links []LinkAnalytics `json:"links"`
	Cards []CardAnalytics `json:"cards"`
}

type CountryBreakdown struct {
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	Views       int     `json:"views"`
	Percentage  float64 `json:"percentage"`
}

type Lead struct {
	ID        string `json:"id"`
	BioCardID string `json:"bio_card_id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type LeadListResponse struct {
	Leads   []Lead `json:"leads"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

type LeadParams struct {
	Page    int
	PerPage int
	CardID  string
}

func (p LeadParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.CardID != "" {
		v.Set("card_id", p.CardID)
	}
	return v
}

func (c *Client) BioAnalytics(ctx context.Context, pageID string, p AnalyticsParams) (*PageAnalytics, error) {
	var out PageAnalytics
	if err := c.get(ctx, "/bio-pages/"+pageID+"/analytics"+query(p.values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ItemAnalytics(ctx context.Context, pageID string, p AnalyticsParams) (*ItemAnalytics, error) {
	var out ItemAnalytics
	if err := c.get(ctx, "/bio-pages/"+pageID+"/analytics/items"+query(p.values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CountryBreakdown(ctx context.Context, pageID string, p AnalyticsParams) ([]CountryBreakdown, error) {
	var out []CountryBreakdown
	if err := c.get(ctx, "/bio-pages/"+pageID+"/analytics/countries"+query(p.values()), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportAnalytics returns the export file bytes exactly as served.
func (c *Client) ExportAnalytics(ctx context.Context, pageID string, p AnalyticsParams) ([]byte, error) {
	return c.download(ctx, "/bio-pages/"+pageID+"/analytics/export"+query(p.values()))
}

func (c *Client) Leads(ctx context.Context, pageID string, p LeadParams) (*LeadListResponse, error) {
	var out LeadListResponse
	if err := c.get(ctx, "/bio-pages/"+pageID+"/leads"+query(p.values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLead(ctx context.Context, pageID, leadID string) error {
	return c.del(ctx, "/bio-pages/"+pageID+"/leads/"+leadID)
}

// ExportLeads returns the lead export file bytes exactly as served.
func (c *Client) ExportLeads(ctx context.Context, pageID string) ([]byte, error) {
	return c.download(ctx, "/bio-pages/"+pageID+"/leads/export")
}
