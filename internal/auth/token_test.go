package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeToken(t *testing.T, dir string, tok Token) string {
	t.Helper()
	path := filepath.Join(dir, "token.json")
	b, err := json.Marshal(tok)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenSourceServesValidToken(t *testing.T) {
	path := writeToken(t, t.TempDir(), Token{
		AccessToken: "live-token",
		Expiry:      time.Now().Add(time.Hour),
	})
	ts := NewFileTokenSource(path, "cid", "secret")
	got, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got != "live-token" {
		t.Errorf("token = %q", got)
	}
}

func TestTokenSourceRefreshesAndPersists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.Form.Get("grant_type") != "refresh_token" || r.Form.Get("refresh_token") != "refresh-1" {
			t.Errorf("unexpected form: %v", r.Form)
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "fresh", "expires_in": 3600})
	}))
	defer srv.Close()

	path := writeToken(t, t.TempDir(), Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Hour),
	})
	ts := NewFileTokenSource(path, "cid", "secret").WithEndpoint(srv.URL)

	got, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got != "fresh" {
		t.Errorf("token = %q", got)
	}

	// refreshed token must be written back to disk
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var saved Token
	if err := json.Unmarshal(b, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.AccessToken != "fresh" || saved.RefreshToken != "refresh-1" {
		t.Errorf("saved = %+v", saved)
	}
}

func TestTokenSourceExpiredWithoutRefresh(t *testing.T) {
	path := writeToken(t, t.TempDir(), Token{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Minute),
	})
	ts := NewFileTokenSource(path, "cid", "secret")
	if _, err := ts.Token(context.Background()); err == nil {
		t.Fatal("expected error for expired token without refresh token")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	s := NewService("test-secret", "admin", "")
	tok, err := s.IssueJWT("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := s.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != "admin" {
		t.Errorf("sub = %q", claims.Sub)
	}
	if _, err := NewService("other-secret", "admin", "").Parse(tok); err == nil {
		t.Error("token verified with wrong secret")
	}
}
