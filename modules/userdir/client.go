package userdir

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// User is a directory record for an existing user.
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// Directory is the lookup contract consumed by the task engine. Given a set
// of user ids it returns the records of those that exist; ids without a
// record are simply absent from the result.
type Directory interface {
	Lookup(ctx context.Context, ids []int64) ([]User, error)
}

const defaultTimeout = 10 * time.Second

// Client calls the external user-directory service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// Compile-time interface check.
var _ Directory = (*Client)(nil)

// NewClient creates a directory client for the given base URL. A nil
// httpClient falls back to a client with a default timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Lookup performs a single GET /api/v1/user?ids[]=... round trip. Transport
// failures and non-2xx responses are infrastructure errors; no retry is
// attempted.
func (c *Client) Lookup(ctx context.Context, ids []int64) ([]User, error) {
	query := url.Values{}
	for _, id := range ids {
		query.Add("ids[]", strconv.FormatInt(id, 10))
	}

	endpoint := c.baseURL + "/api/v1/user?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user directory request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("user directory returned status %d", resp.StatusCode)
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode user directory response: %w", err)
	}
	return users, nil
}
