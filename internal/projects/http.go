// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

// HTTPClient implements Client against the JSON project API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.http.Timeout = d
		}
	}
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	cleaned := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if cleaned == "" {
		return nil, errors.New("missing server url")
	}
	parsed, err := url.Parse(cleaned)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}
	c := &HTTPClient{
		baseURL: cleaned,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type listResponse struct {
	Projects []string `json:"projects"`
}

type errorResponse struct {
	Error *string `json:"error"`
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]string, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/projects")
	if err != nil {
		return nil, err
	}
	if status/100 != 2 {
		return nil, statusError(status, body)
	}
	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode project list: %w", err)
	}
	if resp.Projects == nil {
		return []string{}, nil
	}
	return resp.Projects, nil
}

func (c *HTTPClient) CreateProject(ctx context.Context, name string) (Result, error) {
	return c.mutate(ctx, http.MethodPost, "/projects/new/"+url.PathEscape(name))
}

func (c *HTTPClient) DeleteProject(ctx context.Context, name string) (Result, error) {
	return c.mutate(ctx, http.MethodDelete, "/projects/delete/"+url.PathEscape(name))
}

func (c *HTTPClient) TriggerHack(ctx context.Context) error {
	status, body, err := c.do(ctx, http.MethodGet, "/hack-trigger")
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return statusError(status, body)
	}
	return nil
}

func (c *HTTPClient) mutate(ctx context.Context, method, path string) (Result, error) {
	status, body, err := c.do(ctx, method, path)
	if err != nil {
		return Result{}, err
	}
	var resp errorResponse
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			if status/100 != 2 {
				return Result{}, statusError(status, body)
			}
			return Result{}, fmt.Errorf("decode response: %w", err)
		}
	}
	if resp.Error != nil {
		return Result{Error: *resp.Error}, nil
	}
	if status/100 != 2 {
		return Result{}, statusError(status, body)
	}
	return Result{OK: true}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("server returned %d: %s", status, msg)
}
