// Package session persists the access/refresh token pair between runs and
// answers the local "am I still logged in" question without a network call.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Store holds the bearer tokens for the current session. It is safe for
// concurrent use; every API call goes through it.
type Store struct {
	mu   sync.Mutex
	path string

	access  string
	refresh string
}

type fileTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Open loads any persisted tokens from path. A missing or unreadable file is
// not an error — it just means no session.
func Open(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var ft fileTokens
	if err := json.Unmarshal(data, &ft); err != nil {
		return s
	}
	s.access = ft.AccessToken
	s.refresh = ft.RefreshToken
	return s
}

func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// SetTokens overwrites both tokens and persists them. The write is
// best-effort: an unwritable state dir still leaves the in-memory pair
// usable for the rest of the process.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return s.save()
}

// Clear removes both tokens and the persisted file.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	if s.path != "" {
		os.Remove(s.path)
	}
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.Marshal(fileTokens{AccessToken: s.access, RefreshToken: s.refresh})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Authenticated reports whether the stored access token looks valid: present,
// decodable, and with an exp claim in the future. This is a local heuristic
// only — the signature is not verified; the server remains the source of
// truth for real authorization.
func (s *Store) Authenticated() bool {
	token := s.AccessToken()
	if token == "" {
		return false
	}
	exp, err := tokenExpiry(token)
	if err != nil {
		return false
	}
	return time.Now().Before(exp)
}

func tokenExpiry(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("not a JWT")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding payload: %w", err)
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parsing claims: %w", err)
	}
	if claims.Exp == 0 {
		return time.Time{}, fmt.Errorf("no exp claim")
	}
	return time.Unix(claims.Exp, 0), nil
}
