package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://forms.googleapis.com/v1"

// TokenSource yields a bearer token for the Forms API. Implementations are
// expected to refresh expired tokens themselves.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	ts      TokenSource
	httpc   *http.Client
	baseURL string
}

func NewClient(ts TokenSource) *Client {
	return &Client{
		ts:      ts,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// WithBaseURL points the client at a different endpoint (tests, proxies).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Create makes an empty form carrying only a title.
func (c *Client) Create(ctx context.Context, title string) (Form, error) {
	body := map[string]Info{"info": {Title: title}}
	var out Form
	if err := c.do(ctx, http.MethodPost, "/forms", body, &out); err != nil {
		return Form{}, err
	}
	if out.FormID == "" {
		return Form{}, fmt.Errorf("forms create: missing formId in response")
	}
	return out, nil
}

// BatchUpdate applies the projected request sequence to an existing form.
func (c *Client) BatchUpdate(ctx context.Context, formID string, reqs []Request) error {
	body := map[string][]Request{"requests": reqs}
	return c.do(ctx, http.MethodPost, "/forms/"+formID+":batchUpdate", body, nil)
}

// Get fetches the form back, mainly for its responderUri.
func (c *Client) Get(ctx context.Context, formID string) (Form, error) {
	var out Form
	if err := c.do(ctx, http.MethodGet, "/forms/"+formID, nil, &out); err != nil {
		return Form{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	tok, err := c.ts.Token(ctx)
	if err != nil {
		return fmt.Errorf("forms auth: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// one retry with a fresh token
		if tok, err = c.ts.Token(ctx); err != nil {
			return fmt.Errorf("forms auth: %w", err)
		}
		retry := req.Clone(ctx)
		retry.Header.Set("Authorization", "Bearer "+tok)
		if body != nil {
			b, _ := json.Marshal(body)
			retry.Body = io.NopCloser(bytes.NewReader(b))
		}
		resp2, err := c.httpc.Do(retry)
		if err != nil {
			return err
		}
		defer resp2.Body.Close()
		resp = resp2
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		x, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("forms api %d: %s", resp.StatusCode, string(x))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
