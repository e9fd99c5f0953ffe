package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// Scopes required to create and read back quiz forms.
var Scopes = []string{
	"https://www.googleapis.com/auth/forms.body",
	"https://www.googleapis.com/auth/forms.body.readonly",
	"https://www.googleapis.com/auth/forms.responses.readonly",
}

const tokenEndpoint = "https://oauth2.googleapis.com/token"

// Token is the persisted OAuth credential. Expiry is absolute.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
}

func (t Token) valid() bool {
	return t.AccessToken != "" && time.Now().Add(30*time.Second).Before(t.Expiry)
}

// FileTokenSource keeps a token on disk and refreshes it through the Google
// token endpoint when it goes stale. Safe for concurrent use.
type FileTokenSource struct {
	mu           sync.Mutex
	path         string
	clientID     string
	clientSecret string
	endpoint     string
	httpc        *http.Client
	tok          Token
}

func NewFileTokenSource(path, clientID, clientSecret string) *FileTokenSource {
	return &FileTokenSource{
		path:         path,
		clientID:     clientID,
		clientSecret: clientSecret,
		endpoint:     tokenEndpoint,
		httpc:        &http.Client{Timeout: 30 * time.Second},
	}
}

// WithEndpoint overrides the token endpoint (tests).
func (s *FileTokenSource) WithEndpoint(u string) *FileTokenSource {
	s.endpoint = u
	return s
}

func (s *FileTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tok.AccessToken == "" {
		if err := s.load(); err != nil {
			return "", err
		}
	}
	if s.tok.valid() {
		return s.tok.AccessToken, nil
	}
	if s.tok.RefreshToken == "" {
		return "", errors.New("oauth token expired and no refresh token present; re-authorize")
	}
	if err := s.refresh(ctx); err != nil {
		return "", err
	}
	return s.tok.AccessToken, nil
}

func (s *FileTokenSource) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read token %s: %w", s.path, err)
	}
	return json.Unmarshal(b, &s.tok)
}

func (s *FileTokenSource) refresh(ctx context.Context) error {
	form := url.Values{}
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)
	form.Set("refresh_token", s.tok.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("token refresh: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token refresh: status %d", resp.StatusCode)
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil || tr.AccessToken == "" {
		return errors.New("token refresh: bad response")
	}
	s.tok.AccessToken = tr.AccessToken
	s.tok.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return s.save()
}

func (s *FileTokenSource) save() error {
	b, err := json.MarshalIndent(s.tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
