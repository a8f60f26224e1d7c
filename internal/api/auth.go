package api

import (
	"context"
	"net/http"
)

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair and persists it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var tokens TokenResponse
	data, err := c.send(ctx, http.MethodPost, "/auth/login", "", credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := decode(data, &tokens); err != nil {
		return err
	}
	return c.session.SetTokens(tokens.AccessToken, tokens.RefreshToken)
}

// Signup registers a new account and persists the returned token pair.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	var tokens TokenResponse
	data, err := c.send(ctx, http.MethodPost, "/auth/signup", "", credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := decode(data, &tokens); err != nil {
		return err
	}
	return c.session.SetTokens(tokens.AccessToken, tokens.RefreshToken)
}

// Logout tells the server to revoke the session, then drops local tokens.
// Local state is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.authedSend(ctx, http.MethodPost, "/auth/logout", nil)
	c.session.Clear()
	return err
}

// Me returns the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}
