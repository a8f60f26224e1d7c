package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shivakharbanda/cm-front/internal/session"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	sess := session.Open(filepath.Join(t.TempDir(), "session.json"))
	return New(baseURL, sess, zerolog.Nop())
}

func loggedInClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := testClient(t, baseURL)
	if err := c.session.SetTokens("stale-access", "refresh-1"); err != nil {
		t.Fatal(err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestRefreshRetryOn401(t *testing.T) {
	var meCalls, refreshCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			meCalls.Add(1)
			if r.Header.Get("Authorization") == "Bearer fresh-access" {
				writeJSON(w, http.StatusOK, User{ID: "u1", Email: "a@b.c"})
				return
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
		case "/api/v1/auth/refresh":
			refreshCalls.Add(1)
			var body struct {
				RefreshToken string `json:"refresh_token"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.RefreshToken != "refresh-1" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "bad refresh token"})
				return
			}
			writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "fresh-access", RefreshToken: "refresh-2"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL)
	u, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("user id = %q", u.ID)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh called %d times, want 1", got)
	}
	if got := meCalls.Load(); got != 2 {
		t.Errorf("original request issued %d times, want 2 (one failure, one retry)", got)
	}
	if c.session.AccessToken() != "fresh-access" || c.session.RefreshToken() != "refresh-2" {
		t.Error("expected refreshed token pair persisted")
	}
}

func TestRefreshFailureClearsTokens(t *testing.T) {
	var meCalls, refreshCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			meCalls.Add(1)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
		case "/api/v1/auth/refresh":
			refreshCalls.Add(1)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "refresh revoked"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL)
	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if got := meCalls.Load(); got != 1 {
		t.Errorf("original request issued %d times, want 1 (no retry after failed refresh)", got)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh called %d times, want 1", got)
	}
	if c.session.AccessToken() != "" || c.session.RefreshToken() != "" {
		t.Error("expected tokens cleared after failed refresh")
	}
}

func TestNon401FailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "database down"})
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL)
	_, err := c.Me(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "database down" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("request issued %d times, want 1", got)
	}
}

func TestNoTokenFailsWithoutNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("expected no HTTP call without a token")
	}
}

func TestAccountNotFoundIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "no account connected"})
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL)
	acc, err := c.InstagramAccount(context.Background())
	if err != nil {
		t.Fatalf("expected nil error for 404, got %v", err)
	}
	if acc != nil {
		t.Errorf("expected nil account, got %+v", acc)
	}
}

func TestDownloadReturnsRawBytes(t *testing.T) {
	csv := "email,created_at\na@b.c,2026-01-01\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL)
	data, err := c.ExportLeads(context.Background(), "page-1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(data) != csv {
		t.Errorf("export payload altered: %q", string(data))
	}
}

func TestNetworkFailureIsNotAPIError(t *testing.T) {
	c := loggedInClient(t, "http://127.0.0.1:1") // nothing listens here
	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Errorf("connectivity failure should not be an *Error, got %v", apiErr)
	}
}

func TestErrorMessageEmbedsStatus(t *testing.T) {
	err := &Error{Status: 422, Message: "slug already taken"}
	want := "api: 422 slug already taken"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsStatus(err, 422) {
		t.Error("IsStatus should match on the numeric field")
	}
	if IsStatus(err, 404) {
		t.Error("IsStatus should not match a different status")
	}
}

func TestLoginPersistsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "a@b.c" || creds.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "bad credentials"})
			return
		}
		writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	if err := c.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if c.session.AccessToken() != "acc" || c.session.RefreshToken() != "ref" {
		t.Error("expected token pair persisted after login")
	}

	if err := c.Login(context.Background(), "a@b.c", "wrong"); !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("expected 401 for bad credentials, got %v", err)
	}
}

func TestReorderWireFormat(t *testing.T) {
	var got map[string][]ReorderItem
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/bio-pages/p1/items/reorder" || r.Method != http.MethodPut {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := loggedInClient(t, srv.URL)
	items := []ReorderItem{
		{Type: ItemLink, ItemID: "l1", Position: 0},
		{Type: ItemCard, ItemID: "c1", Position: 1},
	}
	if err := c.ReorderPageItems(context.Background(), "p1", items); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if len(got["items"]) != 2 || got["items"][1].ItemID != "c1" {
		t.Errorf("unexpected wire payload: %+v", got)
	}
}
