// Package geocoding turns partial place names into autocomplete suggestions.
package geocoding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/alexivanou/weather-widget/internal/config"
	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultLimit    = 5
	defaultMinChars = 2
	maxBodyBytes    = 1 << 20
)

// Client queries the remote geocoding endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limit      int
	minChars   int
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the transport
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for swallowed failures
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a geocoding client from provider settings
func NewClient(cfg config.ProviderConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.GeocodingURL,
		apiKey:     cfg.APIKey,
		limit:      cfg.AutocompleteLimit,
		minChars:   cfg.MinChars,
		logger:     zap.NewNop(),
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultGeocodingURL
	}
	if c.limit <= 0 {
		c.limit = defaultLimit
	}
	if c.minChars <= 0 {
		c.minChars = defaultMinChars
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Suggest returns up to limit matches for fragment. Failures never surface:
// they are logged and produce an empty list. Fragments shorter than the
// minimum length and a missing API key skip the network entirely.
func (c *Client) Suggest(ctx context.Context, fragment string) []model.Suggestion {
	if utf8.RuneCountInString(fragment) < c.minChars {
		return []model.Suggestion{}
	}
	if c.apiKey == "" {
		c.logger.Debug("Skipping suggestions: API key not configured")
		return []model.Suggestion{}
	}

	body, status, err := c.get(ctx, fragment)
	if err != nil {
		if ctx.Err() != nil {
			c.logger.Debug("Suggestion request cancelled", zap.String("fragment", fragment))
		} else {
			c.logger.Warn("Error fetching city suggestions", zap.String("fragment", fragment), zap.Error(err))
		}
		return []model.Suggestion{}
	}

	if !gjson.ValidBytes(body) {
		c.logger.Warn("Malformed geocoding response",
			zap.String("fragment", fragment),
			zap.Int("status", status),
		)
		return []model.Suggestion{}
	}

	payload := gjson.ParseBytes(body)
	if !payload.IsArray() {
		c.logger.Warn("Unexpected geocoding response",
			zap.String("fragment", fragment),
			zap.Int("status", status),
			zap.String("message", payload.Get("message").String()),
		)
		return []model.Suggestion{}
	}

	return parseSuggestions(payload)
}

func (c *Client) get(ctx context.Context, fragment string) ([]byte, int, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid geocoding url: %w", err)
	}
	q := u.Query()
	q.Set("q", fragment)
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request geocoding: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read geocoding response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func parseSuggestions(payload gjson.Result) []model.Suggestion {
	entries := payload.Array()
	suggestions := make([]model.Suggestion, 0, len(entries))
	for _, e := range entries {
		suggestions = append(suggestions, model.NewSuggestion(
			e.Get("name").String(),
			e.Get("state").String(),
			e.Get("country").String(),
			e.Get("lat").Float(),
			e.Get("lon").Float(),
		))
	}
	return suggestions
}
