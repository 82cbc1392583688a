// Package client calls the prediction service over HTTP.
package client

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

// DefaultBaseURL is the address of a locally running service.
const DefaultBaseURL = "http://127.0.0.1:5001"

// Health is the body of GET /health.
type Health struct {
	Status              string `json:"status"`
	ModelsLoaded        int    `json:"models_loaded"`
	PreprocessorsLoaded int    `json:"preprocessors_loaded"`
}

// Prediction is the body of a successful POST /predict/{model}.
type Prediction struct {
	Model      string         `json:"model"`
	Prediction string         `json:"prediction"`
	Input      map[string]any `json:"input"`
}

// APIError is a non-2xx response. Fields holds the decoded body, which
// carries extras such as available_models or missing_columns.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Client is a prediction service client.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health fetches the service health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Models lists the models the service serves.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	var body struct {
		Models []string `json:"models"`
	}
	if err := c.do(ctx, http.MethodGet, "/models", nil, &body); err != nil {
		return nil, err
	}
	return body.Models, nil
}

// Predict classifies record with the named model.
func (c *Client) Predict(ctx context.Context, model string, record map[string]any) (*Prediction, error) {
	var p Prediction
	if err := c.do(ctx, http.MethodPost, "/predict/"+url.PathEscape(model), record, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		if json.Unmarshal(data, &apiErr.Fields) == nil {
			if msg, ok := apiErr.Fields["error"].(string); ok {
				apiErr.Message = msg
			}
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
