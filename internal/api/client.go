package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"plantmanager/internal/logging"
	"plantmanager/internal/model"

	"go.uber.org/zap"
)

// DefaultBaseURL is where the plants API listens in development.
const DefaultBaseURL = "http://localhost:3333"

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchError reports a failed request against the plants API.
type FetchError struct {
	Op     string // environments, plants
	Status int    // 0 when the request never got a response
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: API error: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client wraps the plants REST API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a plants API client for baseURL.
func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: 5 * time.Second})
}

// NewClientWithHTTP creates a client with a custom HTTP client (useful for testing).
func NewClientWithHTTP(baseURL string, httpClient HTTPClient) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchEnvironments returns the environments sorted by title. Entries using the
// reserved "all" key are dropped so they cannot collide with the synthetic one.
func (c *Client) FetchEnvironments(ctx context.Context) ([]model.Environment, error) {
	params := url.Values{}
	params.Set("_sort", "title")
	params.Set("_order", "asc")

	var envs []model.Environment
	if err := c.get(ctx, "environments", "plants_environments", params, &envs); err != nil {
		return nil, err
	}

	result := make([]model.Environment, 0, len(envs))
	for _, env := range envs {
		if env.Key == model.AllEnvironmentsKey {
			logging.Warn("dropping environment with reserved key", zap.String("title", env.Title))
			continue
		}
		result = append(result, env)
	}
	return result, nil
}

// FetchPlants returns one page of plants sorted by name. An empty slice means
// there are no more pages.
func (c *Client) FetchPlants(ctx context.Context, page, limit int) ([]model.Plant, error) {
	params := url.Values{}
	params.Set("_sort", "name")
	params.Set("_order", "asc")
	params.Set("_page", strconv.Itoa(page))
	params.Set("_limit", strconv.Itoa(limit))

	plants := []model.Plant{}
	if err := c.get(ctx, "plants", "plants", params, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("request creation failed: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("network error: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogHTTPRequest(http.MethodGet, reqURL, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("JSON decode error: %w", err)}
	}
	return nil
}
