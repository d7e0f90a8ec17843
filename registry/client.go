package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://registry.npmjs.org"

// Client queries an npm-compatible registry for package release history.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a registry client against the public npm registry.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ReleaseTimes fetches the publish timestamp for every released version of a
// package. The registry's "created" and "modified" bookkeeping entries are
// dropped.
func (c *Client) ReleaseTimes(name string) (map[string]time.Time, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/" + url.PathEscape(name))
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry error for %s: %s", name, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	var doc struct {
		Time map[string]string `json:"time"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("error decoding JSON: %w", err)
	}

	times := make(map[string]time.Time)
	for version, stamp := range doc.Time {
		if version == "created" || version == "modified" {
			continue
		}
		at, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			continue
		}
		times[version] = at
	}

	return times, nil
}
