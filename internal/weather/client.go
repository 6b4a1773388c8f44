// Package weather fetches current conditions and classifies the provider's
// answer into the outcomes the widget renders.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexivanou/weather-widget/internal/config"
	"github.com/alexivanou/weather-widget/internal/format"
	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultUnits = "Metric"
	maxBodyBytes = 1 << 20
)

// Client queries the remote current-weather endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	units      string
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

// WithLogger sets the logger used for failed lookups
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a weather client from provider settings
func NewClient(cfg config.ProviderConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.WeatherURL,
		apiKey:     cfg.APIKey,
		units:      cfg.Units,
		logger:     zap.NewNop(),
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultWeatherURL
	}
	if c.units == "" {
		c.units = defaultUnits
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch looks up current weather for location. It never returns a Go error:
// every failure is folded into the Outcome.
func (c *Client) Fetch(ctx context.Context, location string) Outcome {
	if !format.IsValidLocation(location) {
		return failure(KindError, location, ErrInvalidLocation)
	}
	if c.apiKey == "" {
		return failure(KindError, location, ErrMissingAPIKey)
	}

	body, err := c.get(ctx, location)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Debug("Weather request cancelled", zap.String("location", location))
			return failure(KindError, location, fmt.Errorf("%w: %w", ErrTransport, ctxErr))
		}
		c.logger.Warn("Weather fetch error", zap.String("location", location), zap.Error(err))
		return failure(KindError, location, fmt.Errorf("%w: %v", ErrTransport, err))
	}

	outcome := classify(location, body)
	if outcome.Kind != KindSuccess {
		c.logger.Info("Weather lookup failed",
			zap.String("location", location),
			zap.Stringer("kind", outcome.Kind),
			zap.Error(outcome.Err),
		)
	}
	return outcome
}

func (c *Client) get(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weather url: %w", err)
	}
	q := u.Query()
	q.Set("q", location)
	q.Set("units", c.units)
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}
	return body, nil
}

// classify reads the payload's own "cod" field; the transport status is not
// authoritative for this provider.
func classify(location string, body []byte) Outcome {
	if !gjson.ValidBytes(body) {
		return failure(KindError, location, fmt.Errorf("%w: malformed payload", ErrTransport))
	}
	payload := gjson.ParseBytes(body)
	if !payload.IsObject() {
		return failure(KindError, location, fmt.Errorf("%w: unexpected payload", ErrTransport))
	}

	code := statusCode(payload.Get("cod"))
	switch code {
	case "200":
		var record model.WeatherRecord
		if err := json.Unmarshal(body, &record); err != nil {
			return failure(KindError, location, fmt.Errorf("%w: decode payload: %v", ErrTransport, err))
		}
		return success(location, record)
	case "404":
		return failure(KindNotFound, location, fmt.Errorf("%w: %s", ErrNotFound, location))
	case "401":
		return failure(KindInvalidAPIKey, location, ErrInvalidAPIKey)
	default:
		return failure(KindError, location, &ProviderError{
			Code:    code,
			Message: payload.Get("message").String(),
		})
	}
}

// statusCode normalizes "cod", which the provider sends as a number on
// success and as a string on some failures.
func statusCode(cod gjson.Result) string {
	switch cod.Type {
	case gjson.Number:
		return strconv.FormatInt(cod.Int(), 10)
	case gjson.String:
		return strings.TrimSpace(cod.Str)
	default:
		return ""
	}
}
