// Package transport provides the shared HTTP plumbing for the external
// recognition and persistence services. Both speak JSON under a uniform
// {success, data | error} envelope; helpers here decode the envelope and
// classify failures so callers only ever see NetworkError or ServiceError.
//
// Retry and backoff are deliberately absent: controllers surface failures
// and wait for the operator to re-invoke the action.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an authenticated HTTP client for one service base URL.
type Client struct {
	baseURL   string
	parsedURL *url.URL
	token     string
	http      *http.Client
}

// NewClient creates a client for the given service base URL. The token is
// optional; when set it is sent as a bearer token on every request.
func NewClient(rawURL, token string) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service URL: %w", err)
	}
	return &Client{
		baseURL:   rawURL,
		parsedURL: parsed,
		token:     token,
		http:      &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// resolveURL builds a full URL from the base URL and the given path segments.
// If the last segment contains a query string (e.g. "faces?count=10"), it is
// split so JoinPath only receives the path portion and the query is appended.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := c.parsedURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// envelope is the uniform response wrapper both services use.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Get performs a GET request and decodes the envelope data into T.
func Get[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	return do[T](ctx, c, http.MethodGet, endpoint, nil)
}

// Post performs a POST request with a JSON body and decodes the envelope data into T.
func Post[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	return do[T](ctx, c, http.MethodPost, endpoint, body)
}

// Put performs a PUT request with a JSON body and decodes the envelope data into T.
func Put[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	return do[T](ctx, c, http.MethodPut, endpoint, body)
}

// Delete performs a DELETE request and decodes the envelope data into T.
func Delete[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	return do[T](ctx, c, http.MethodDelete, endpoint, body)
}

func do[T any](ctx context.Context, c *Client, method, endpoint string, requestBody any) (*T, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if !env.Success {
		return nil, &ServiceError{Status: resp.StatusCode, Message: env.Error}
	}

	var result T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result); err != nil {
			return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("malformed response data: %w", err)}
		}
	}
	return &result, nil
}

// GetBytes performs a GET request and returns the raw response body, for
// non-enveloped payloads such as photo image downloads.
func GetBytes(ctx context.Context, c *Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}
