package api

import (
	"context"
	"net/url"
	"strconv"
)

type TriggerType string

const (
	TriggerAllComments TriggerType = "all_comments"
	TriggerKeyword     TriggerType = "keyword"
)

type Automation struct {
	ID                 string      `json:"id"`
	InstagramAccountID string      `json:"instagram_account_id"`
	Name               string      `json:"name"`
	PostID             string      `json:"post_id"`
	TriggerType        TriggerType `json:"trigger_type"`
	Keywords           []string    `json:"keywords,omitempty"`
	DMMessageTemplate  string      `json:"dm_message_template"`
	IsActive           bool        `json:"is_active"`
	CreatedAt          string      `json:"created_at"`
	UpdatedAt          string      `json:"updated_at"`
}

type AutomationCreate struct {
	InstagramAccountID string      `json:"instagram_account_id"`
	Name               string      `json:"name"`
	PostID             string      `json:"post_id"`
	TriggerType        TriggerType `json:"trigger_type"`
	Keywords           []string    `json:"keywords,omitempty"`
	DMMessageTemplate  string      `json:"dm_message_template"`
}

type AutomationUpdate struct {
	Name              *string     `json:"name,omitempty"`
	TriggerType       TriggerType `json:"trigger_type,omitempty"`
	Keywords          []string    `json:"keywords,omitempty"`
	DMMessageTemplate *string     `json:"dm_message_template,omitempty"`
}

type DatePoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type AutomationAnalytics struct {
	TotalComments int         `json:"total_comments"`
	TotalDMsSent  int         `json:"total_dms_sent"`
	SuccessRate   float64     `json:"success_rate"`
	CommentsByDay []DatePoint `json:"comments_by_day"`
	DMsByDay      []DatePoint `json:"dms_by_day"`
}

type AutomationSummary struct {
	TotalComments int `json:"total_comments"`
	TotalDMsSent  int `json:"total_dms_sent"`
}

type Commenter struct {
	CommenterUserID string `json:"commenter_user_id"`
	CommentID       string `json:"comment_id"`
	Status          string `json:"status"`
	SentAt          string `json:"sent_at"`
}

type CommentersResponse struct {
	Commenters []Commenter `json:"commenters"`
	Total      int         `json:"total"`
}

// Automations lists automations, optionally scoped to one Instagram account.
func (c *Client) Automations(ctx context.Context, instagramAccountID string) ([]Automation, error) {
	params := url.Values{}
	if instagramAccountID != "" {
		params.Set("instagram_account_id", instagramAccountID)
	}
	var out []Automation
	if err := c.get(ctx, "/automations"+query(params), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Automation(ctx context.Context, id string) (*Automation, error) {
	var a Automation
	if err := c.get(ctx, "/automations/"+id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAutomation(ctx context.Context, in AutomationCreate) (*Automation, error) {
	var a Automation
	if err := c.post(ctx, "/automations", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) UpdateAutomation(ctx context.Context, id string, in AutomationUpdate) (*Automation, error) {
	var a Automation
	if err := c.put(ctx, "/automations/"+id, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteAutomation(ctx context.Context, id string) error {
	return c.del(ctx, "/automations/"+id)
}

func (c *Client) ActivateAutomation(ctx context.Context, id string) (*Automation, error) {
	var a Automation
	if err := c.post(ctx, "/automations/"+id+"/activate", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeactivateAutomation(ctx context.Context, id string) (*Automation, error) {
	var a Automation
	if err := c.post(ctx, "/automations/"+id+"/deactivate", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// AutomationAnalytics returns per-automation time series, bounded by the
// optional start/end dates (YYYY-MM-DD).
func (c *Client) AutomationAnalytics(ctx context.Context, id, startDate, endDate string) (*AutomationAnalytics, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}
	var out AutomationAnalytics
	if err := c.get(ctx, "/automations/"+id+"/analytics"+query(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AutomationsSummary returns totals keyed by automation id.
func (c *Client) AutomationsSummary(ctx context.Context) (map[string]AutomationSummary, error) {
	var out map[string]AutomationSummary
	if err := c.get(ctx, "/automations/analytics/summary", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AutomationCommenters pages through users the automation replied to.
func (c *Client) AutomationCommenters(ctx context.Context, id string, limit, offset int) (*CommentersResponse, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	var out CommentersResponse
	if err := c.get(ctx, "/automations/"+id+"/commenters"+query(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
