// Package nexus provides a client for the Nexus Mods public API.
// Endpoints live under https://api.nexusmods.com/v1/ and authenticate with a
// personal API key sent in the "apikey" header.
package nexus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/nexwatch/nexwatch/internal/errors"
)

// DefaultBaseURL is the base URL of the Nexus Mods v1 API.
const DefaultBaseURL = "https://api.nexusmods.com/v1"

// DefaultUserAgent identifies nexwatch to the API.
const DefaultUserAgent = "nexwatch"

// RateLimits mirrors the X-RL-* response headers. A value of -1 means the
// header has not been seen yet.
type RateLimits struct {
	HourlyRemaining int
	DailyRemaining  int
}

// Client calls the Nexus Mods API.
type Client struct {
	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client
	// BaseURL is the API base URL without trailing slash.
	BaseURL string
	// UserAgent is sent with every request.
	UserAgent string

	apiKey string
	cache  *responseCache

	mu     sync.Mutex
	limits RateLimits
}

// NewClient creates a client authenticated with the given API key.
// Responses are cached in memory for cacheTTL; pass 0 to disable caching.
func NewClient(apiKey string, cacheTTL time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    DefaultBaseURL,
		UserAgent:  DefaultUserAgent,
		apiKey:     apiKey,
		cache:      newResponseCache(cacheTTL),
		limits:     RateLimits{HourlyRemaining: -1, DailyRemaining: -1},
	}
}

// RateLimits returns the most recently observed rate limit headers.
func (c *Client) RateLimits() RateLimits {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limits
}

// LatestAdded fetches the most recently added mods for a game.
func (c *Client) LatestAdded(ctx context.Context, game string) ([]Mod, error) {
	var mods []Mod
	path := fmt.Sprintf("/games/%s/mods/latest_added.json", game)
	if err := c.get(ctx, path, nil, &mods); err != nil {
		return nil, err
	}
	return mods, nil
}

// Updated fetches mods updated within the given period ("1d", "1w" or "1m").
func (c *Client) Updated(ctx context.Context, game, period string) ([]ModUpdate, error) {
	var updates []ModUpdate
	path := fmt.Sprintf("/games/%s/mods/updated.json", game)
	query := url.Values{"period": {period}}
	if err := c.get(ctx, path, query, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// TrackedMods fetches the user's tracked mods. When game is non-empty, the
// list is filtered to that game's domain.
func (c *Client) TrackedMods(ctx context.Context, game string) ([]TrackedMod, error) {
	var mods []TrackedMod
	if err := c.get(ctx, "/user/tracked_mods.json", nil, &mods); err != nil {
		return nil, err
	}
	if game == "" {
		return mods, nil
	}
	filtered := mods[:0]
	for _, m := range mods {
		if m.DomainName == game {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// Mod fetches full details for a single mod.
func (c *Client) Mod(ctx context.Context, game string, modID int64) (*Mod, error) {
	var mod Mod
	path := fmt.Sprintf("/games/%s/mods/%d.json", game, modID)
	if err := c.get(ctx, path, nil, &mod); err != nil {
		return nil, err
	}
	return &mod, nil
}

// Changelogs fetches the per-version changelogs for a mod, oldest first.
func (c *Client) Changelogs(ctx context.Context, game string, modID int64) (ChangelogList, error) {
	var list ChangelogList
	path := fmt.Sprintf("/games/%s/mods/%d/changelogs.json", game, modID)
	if err := c.get(ctx, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// get performs an authenticated GET and decodes the JSON response into v.
// Fresh responses are served from the TTL cache when available.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	key := path
	if len(query) > 0 {
		key = path + "?" + query.Encode()
	}

	if data, ok := c.cache.Get(key); ok {
		return json.Unmarshal(data, v)
	}

	u := c.BaseURL + key
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.NetworkUnavailable("api.nexusmods.com", err)
	}
	defer resp.Body.Close()

	c.recordLimits(resp.Header)

	if resp.StatusCode == http.StatusTooManyRequests {
		return errors.RateLimited(retryAfter(resp.Header))
	}
	if resp.StatusCode != http.StatusOK {
		return errors.APIStatus(path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, errors.ErrAPI, "failed to decode response").
			WithDetails("endpoint", path)
	}

	c.cache.Put(key, data)
	return nil
}

// recordLimits updates the tracked rate limit counters from response headers.
func (c *Client) recordLimits(h http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := h.Get("X-RL-Hourly-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.limits.HourlyRemaining = n
		}
	}
	if v := h.Get("X-RL-Daily-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.limits.DailyRemaining = n
		}
	}
}

// retryAfter parses the Retry-After header, if present.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return 0
}
