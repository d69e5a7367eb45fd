// Package client is the HTTP client for the firewall management API. The
// dashboard uses it for every fetch and lifecycle command; it works equally
// against the local API or a remote manager.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fw-panel/internal/models"
)

// APIError is an application-level failure: the manager answered but flagged
// the operation as unsuccessful. Transport and decode failures are returned
// as plain wrapped errors instead.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New builds a client for the management API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiResponse covers every body the management API returns; unused fields
// stay at their zero values.
type apiResponse struct {
	Success    bool               `json:"success"`
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	FirewallID string             `json:"firewall_id"`
	Firewalls  []models.Firewall  `json:"firewalls"`
	Logs       []string           `json:"logs"`
	Statistics *models.Statistics `json:"statistics"`
}

// ListFirewalls fetches all firewall records.
func (c *Client) ListFirewalls(ctx context.Context) ([]models.Firewall, error) {
	resp, err := c.do(ctx, http.MethodGet, "/firewalls", nil)
	if err != nil {
		return nil, err
	}
	return resp.Firewalls, nil
}

// ListLogs fetches the recent activity log entries.
func (c *Client) ListLogs(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/logs", nil)
	if err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// Statistics fetches the manager's counters.
func (c *Client) Statistics(ctx context.Context) (models.Statistics, error) {
	resp, err := c.do(ctx, http.MethodGet, "/statistics", nil)
	if err != nil {
		return models.Statistics{}, err
	}
	if resp.Statistics == nil {
		return models.Statistics{}, fmt.Errorf("GET /statistics: empty statistics")
	}
	return *resp.Statistics, nil
}

// Deploy provisions a new firewall and returns its ID.
func (c *Client) Deploy(ctx context.Context, req models.DeployRequest) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/firewalls/deploy", req)
	if err != nil {
		return "", err
	}
	return resp.FirewallID, nil
}

func (c *Client) Start(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/firewalls/"+id+"/start", nil)
	return err
}

func (c *Client) Stop(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/firewalls/"+id+"/stop", nil)
	return err
}

// Configure updates the security policy of an existing firewall.
func (c *Client) Configure(ctx context.Context, id, policy string) error {
	body := map[string]string{"security_policy": policy}
	_, err := c.do(ctx, http.MethodPost, "/firewalls/"+id+"/configure", body)
	return err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/firewalls/"+id, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*apiResponse, error) {
	url := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if !parsed.Success {
		return &parsed, &APIError{Message: parsed.Error}
	}

	return &parsed, nil
}
