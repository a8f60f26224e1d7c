package api

import (
	"context"
	"net/http"
	"net/url"
)

type InstagramAccount struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	InstagramUserID string `json:"instagram_user_id"`
	Username        string `json:"username"`
	TokenExpiresAt  string `json:"token_expires_at"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type InstagramPost struct {
	ID           string `json:"id"`
	Caption      string `json:"caption,omitempty"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}

type InstagramPostsResponse struct {
	Posts      []InstagramPost `json:"posts"`
	NextCursor string          `json:"next_cursor"`
}

// InstagramAuthURL returns the OAuth URL to start connecting an account.
func (c *Client) InstagramAuthURL(ctx context.Context) (string, error) {
	var out struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.get(ctx, "/instagram/auth-url", &out); err != nil {
		return "", err
	}
	return out.AuthURL, nil
}

// InstagramCallback completes the OAuth flow with the code from Instagram.
func (c *Client) InstagramCallback(ctx context.Context, code string) (*InstagramAccount, error) {
	var acc InstagramAccount
	body := map[string]string{"code": code}
	if err := c.post(ctx, "/instagram/callback", body, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// InstagramAccount returns the connected account, or (nil, nil) when none is
// connected yet — the 404 here means absence, not failure.
func (c *Client) InstagramAccount(ctx context.Context) (*InstagramAccount, error) {
	var acc InstagramAccount
	err := c.get(ctx, "/instagram/account", &acc)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// DisconnectInstagram removes the connected account.
func (c *Client) DisconnectInstagram(ctx context.Context) error {
	return c.del(ctx, "/instagram/account")
}

// InstagramPosts returns one page of media; pass the previous response's
// NextCursor to continue, empty string for the first page.
func (c *Client) InstagramPosts(ctx context.Context, cursor string) (*InstagramPostsResponse, error) {
	params := url.Values{}
	if cursor != "" {
		params.Set("after", cursor)
	}
	var out InstagramPostsResponse
	if err := c.get(ctx, "/instagram/posts"+query(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
