// Package supabase talks to the Supabase auth and PostgREST endpoints over HTTP.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized is returned when Supabase rejects the access token
var ErrUnauthorized = errors.New("supabase: unauthorized")

type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// User is the subset of /auth/v1/user the backend needs
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is a row of the profiles table
type Profile struct {
	ID               string `json:"id"`
	SubscriptionTier string `json:"subscription_tier"`
}

// GetUser resolves an access token to its user
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/v1/user", accessToken, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// GetProfile reads the user's profile row, nil when there is none
func (c *Client) GetProfile(ctx context.Context, accessToken, userID string) (*Profile, error) {
	path := "/rest/v1/profiles?id=eq." + url.QueryEscape(userID) + "&select=id,subscription_tier"

	var rows []Profile
	if err := c.get(ctx, path, accessToken, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) get(ctx context.Context, path, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("supabase %s: unexpected status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode supabase response: %w", err)
	}
	return nil
}
