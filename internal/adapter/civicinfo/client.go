package civicinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/PivtoranisV/event-manager/internal/domain"
	"github.com/PivtoranisV/event-manager/internal/observability"
)

// DefaultBaseURL is the Google Civic Information API v2 endpoint.
const DefaultBaseURL = "https://www.googleapis.com/civicinfo/v2"

// roles restricts results to national legislators.
var roles = []string{"legislatorUpperBody", "legislatorLowerBody"}

// Client implements domain.RepresentativeLookup using the Civic Information API.
type Client struct {
	key        string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// Options tunes a Client. Zero values select defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second; <= 0 disables pacing
}

// NewClient creates a civic information client authenticated with key.
func NewClient(key string, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		limiter: rate.NewLimiter(limit, 1),
		metrics: metrics,
		logger:  logger,
	}
}

// LegislatorsByZipcode returns country-level upper and lower chamber legislators
// for the zipcode. Failures are returned as *domain.LookupError.
func (c *Client) LegislatorsByZipcode(ctx context.Context, zipcode string) ([]domain.Official, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.fail(domain.ReasonTransport, fmt.Errorf("rate limiter: %w", err))
	}

	params := url.Values{
		"key":     {c.key},
		"address": {zipcode},
		"levels":  {"country"},
		"roles":   roles,
	}
	fullURL := c.baseURL + "/representatives?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, c.fail(domain.ReasonTransport, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.LookupAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.fail(domain.ReasonTransport, fmt.Errorf("representatives request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, c.fail(reasonForStatus(resp.StatusCode), &APIError{StatusCode: resp.StatusCode, Message: apiMessage(body)})
	}

	var civicResp response
	if err := json.NewDecoder(resp.Body).Decode(&civicResp); err != nil {
		return nil, c.fail(domain.ReasonDecode, fmt.Errorf("decode response: %w", err))
	}

	officials := make([]domain.Official, 0, len(civicResp.Officials))
	for _, o := range civicResp.Officials {
		officials = append(officials, o.toDomain())
	}

	c.metrics.LookupRequests.WithLabelValues("success").Inc()
	c.logger.Debug("representatives found", "zipcode", zipcode, "count", len(officials))
	return officials, nil
}

func (c *Client) fail(reason domain.FallbackReason, err error) error {
	c.metrics.LookupRequests.WithLabelValues(string(reason)).Inc()
	return &domain.LookupError{Reason: reason, Err: err}
}

// APIError is a non-200 response from the civic information service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("civic info API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("civic info API error: status %d: %s", e.StatusCode, e.Message)
}

func reasonForStatus(status int) domain.FallbackReason {
	switch status {
	case http.StatusBadRequest, http.StatusNotFound:
		return domain.ReasonBadAddress
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ReasonUnauthorized
	case http.StatusTooManyRequests:
		return domain.ReasonQuota
	default:
		return domain.ReasonService
	}
}

// apiMessage extracts error.message from a Google API error body, falling back
// to the raw body.
func apiMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return string(body)
}

// IsStatus reports whether err carries an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Civic Information API response types.

type response struct {
	Officials []official `json:"officials"`
}

type official struct {
	Name     string   `json:"name"`
	Party    string   `json:"party"`
	Phones   []string `json:"phones"`
	URLs     []string `json:"urls"`
	Emails   []string `json:"emails"`
	PhotoURL string   `json:"photoUrl"`
}

func (o official) toDomain() domain.Official {
	return domain.Official{
		Name:     o.Name,
		Party:    o.Party,
		Phones:   o.Phones,
		URLs:     o.URLs,
		Emails:   o.Emails,
		PhotoURL: o.PhotoURL,
	}
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
