package civic

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/willtroppe/callrep/pkg/logger"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// Official is one elected official returned by the upstream directory.
type Official struct {
	Name   string   `json:"name"`
	Office string   `json:"office"`
	Party  string   `json:"party,omitempty"`
	Phones []string `json:"phones"`
}

type lookupResponse struct {
	Officials []Official `json:"officials"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client looks up elected officials by zip code against an external civic
// directory. Responses are cached by zip for the configured TTL so repeated
// lookups from the same session do not hammer the upstream.
type Client struct {
	http  *resty.Client
	cache *cache.Cache
	ttl   time.Duration
}

// NewClient creates a directory client. An empty baseURL disables lookups;
// LookupByZip then always returns an empty slice.
func NewClient(baseURL, apiKey string, ttl time.Duration) *Client {
	c := &Client{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
	if baseURL == "" {
		return c
	}

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2)
	if apiKey != "" {
		c.http.SetQueryParam("key", apiKey)
	}
	return c
}

// Enabled reports whether an upstream directory is configured.
func (c *Client) Enabled() bool {
	return c.http != nil
}

// LookupByZip fetches the officials serving the given zip code.
func (c *Client) LookupByZip(ctx context.Context, zip string) ([]Official, error) {
	if !zipPattern.MatchString(zip) {
		return nil, fmt.Errorf("invalid zip code %q", zip)
	}
	if c.http == nil {
		return nil, nil
	}

	if cached, ok := c.cache.Get(zip); ok {
		return cached.([]Official), nil
	}

	var result lookupResponse
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("zip", zip).
		SetResult(&result).
		SetError(&apiErr).
		Get("/representatives")
	if err != nil {
		return nil, fmt.Errorf("civic directory request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return nil, fmt.Errorf("civic directory returned %d: %s", resp.StatusCode(), apiErr.Error)
		}
		return nil, fmt.Errorf("civic directory returned %d", resp.StatusCode())
	}

	logger.Debug("civic directory lookup",
		zap.String("zip", zip),
		zap.Int("officials", len(result.Officials)),
	)

	c.cache.Set(zip, result.Officials, c.ttl)
	return result.Officials, nil
}
