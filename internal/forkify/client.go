package forkify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeSource defines the API surface the controller depends on.
// It is implemented by *Client and *Cache and can be faked in tests.
type RecipeSource interface {
	Search(ctx context.Context, query string) ([]SummaryDTO, error)
	Recipe(ctx context.Context, id string) (RecipeDTO, error)
	CreateRecipe(ctx context.Context, recipe RecipeDTO) (RecipeDTO, error)
}

// Ensure Client implements RecipeSource at compile time.
var _ RecipeSource = (*Client)(nil)

const (
	// DefaultBaseURL is the public Forkify v2 recipes endpoint.
	DefaultBaseURL   = "https://forkify-api.herokuapp.com/api/v2/recipes"
	DefaultTimeout   = 10 * time.Second
	defaultUserAgent = "forkify/0.1"
	maxErrorBody     = 4 << 10
)

// ErrTimeout is matched by errors.Is when a request exceeds the client timeout.
var ErrTimeout = errors.New("request timed out")

// TimeoutError reports a request that produced no response within the limit.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	secs := strconv.FormatFloat(e.After.Seconds(), 'f', -1, 64)
	return fmt.Sprintf("request took too long! timeout after %s seconds", secs)
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// APIError carries a failure reported by the API itself.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// Options configure a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the Forkify HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	timeout   time.Duration
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewClient builds a Client, filling unset options with defaults.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   base,
		apiKey:    strings.TrimSpace(opts.APIKey),
		timeout:   timeout,
		http:      httpClient,
		userAgent: defaultUserAgent,
		logger:    logger,
	}, nil
}

// Timeout returns the per-request limit.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Search returns the summaries matching query.
func (c *Client) Search(ctx context.Context, query string) ([]SummaryDTO, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	values := url.Values{}
	values.Set("search", query)
	var payload searchData
	if err := c.do(ctx, http.MethodGet, "", values, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Recipes, nil
}

// Recipe fetches the full recipe identified by id.
func (c *Client) Recipe(ctx context.Context, id string) (RecipeDTO, error) {
	if c == nil {
		return RecipeDTO{}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return RecipeDTO{}, fmt.Errorf("recipe id required")
	}
	var payload recipeData
	if err := c.do(ctx, http.MethodGet, url.PathEscape(id), nil, nil, &payload); err != nil {
		return RecipeDTO{}, err
	}
	return payload.Recipe, nil
}

// CreateRecipe uploads a user recipe and returns it as stored by the API,
// including the assigned id and key.
func (c *Client) CreateRecipe(ctx context.Context, recipe RecipeDTO) (RecipeDTO, error) {
	if c == nil {
		return RecipeDTO{}, fmt.Errorf("client is nil")
	}
	if c.apiKey == "" {
		return RecipeDTO{}, fmt.Errorf("api key required to upload recipes")
	}
	body, err := json.Marshal(recipe)
	if err != nil {
		return RecipeDTO{}, fmt.Errorf("encode recipe: %w", err)
	}
	var payload recipeData
	if err := c.do(ctx, http.MethodPost, "", nil, body, &payload); err != nil {
		return RecipeDTO{}, err
	}
	return payload.Recipe, nil
}

func (c *Client) do(ctx context.Context, method, path string, values url.Values, body []byte, dest any) error {
	if values == nil {
		values = url.Values{}
	}
	if c.apiKey != "" {
		values.Set("key", c.apiKey)
	}
	reqURL := *c.baseURL
	if path != "" {
		reqURL.Path = strings.TrimSuffix(reqURL.Path, "/") + "/" + path
	}
	reqURL.RawQuery = values.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	logger := c.logger.With(zap.String("request_id", requestID), zap.String("method", method), zap.String("path", reqURL.Path))
	logger.Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		if c.timedOut(ctx, err) {
			logger.Warn("api request timed out", zap.Duration("timeout", c.timeout))
			return &TimeoutError{After: c.timeout}
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope Envelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 16<<20)).Decode(&envelope)
	logger.Debug("api response", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode >= 400 || strings.EqualFold(envelope.Status, "fail") || strings.EqualFold(envelope.Status, "error") {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(envelope.Message)}
		if apiErr.StatusCode < 400 {
			apiErr.StatusCode = http.StatusBadRequest
		}
		return apiErr
	}
	if decodeErr != nil {
		if c.timedOut(ctx, decodeErr) {
			return &TimeoutError{After: c.timeout}
		}
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if dest == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// timedOut reports whether err came from the per-request deadline rather
// than the caller's context.
func (c *Client) timedOut(ctx context.Context, err error) bool {
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) || isTimeout(err)
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
