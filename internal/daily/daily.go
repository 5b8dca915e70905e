// internal/daily/daily.go
//
// Best-effort client for the remote word-of-the-day source, used only in
// classic word mode. Fetches are idempotent and cached: once a date's word is
// known it is never fetched again. A failed fetch returns an error and leaves
// the caller's hole pending; nothing is persisted on failure, so retrying
// later is always safe.

package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the public word-of-the-day endpoint; the date key is
// appended as "<base>/<YYYY-MM-DD>.json".
const DefaultBaseURL = "https://www.nytimes.com/svc/wordle/v2"

// Client fetches and caches daily solution words.
type Client struct {
	base string
	http *http.Client

	mu    sync.Mutex
	cache map[string]string // date key -> uppercase solution
}

// NewClient builds a Client against baseURL (DefaultBaseURL if empty) with a
// bounded request timeout.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: 10 * time.Second},
		cache: make(map[string]string),
	}
}

// wireSolution is the response shape of the remote endpoint.
type wireSolution struct {
	Solution string `json:"solution"`
}

// WordOfDay returns the solution word for a YYYY-MM-DD date key, uppercase.
// Errors mean "not available yet, try again later": callers must treat them
// as soft and leave the hole's target word empty.
func (c *Client) WordOfDay(ctx context.Context, date string) (string, error) {
	c.mu.Lock()
	if w, ok := c.cache[date]; ok {
		c.mu.Unlock()
		return w, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+date+".json", nil)
	if err != nil {
		return "", err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch word of day %s: %w", date, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch word of day %s: status %d", date, res.StatusCode)
	}

	var body wireSolution
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode word of day %s: %w", date, err)
	}
	w := strings.ToUpper(strings.TrimSpace(body.Solution))
	if w == "" {
		return "", fmt.Errorf("word of day %s: empty solution", date)
	}

	c.mu.Lock()
	c.cache[date] = w
	c.mu.Unlock()
	return w, nil
}
