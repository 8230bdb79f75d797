// Package httpclient implements the client-side boundaries to the dice
// service: the log call and the roll call.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dicehall/internal/domain/message"
)

const defaultTimeout = 10 * time.Second

// ServiceError carries the service's human-readable detail for a
// non-success response.
type ServiceError struct {
	Status int
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("service returned status %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Log submits the request to the audit endpoint. Callers only care whether
// it succeeded.
func (c *Client) Log(ctx context.Context, req message.Request) error {
	return c.post(ctx, "/dice/log_command", req, nil)
}

// Roll asks the service for the authoritative result.
func (c *Client) Roll(ctx context.Context, req message.Request) (message.ResultMessage, error) {
	var res message.ResultMessage
	if err := c.post(ctx, "/dice/roll", req, &res); err != nil {
		return message.ResultMessage{}, err
	}
	return res, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeServiceError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// decodeServiceError extracts the {"detail": ...} body the service sends
// with every failure; a body in any other shape degrades to the status.
func decodeServiceError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &body)
	return &ServiceError{Status: resp.StatusCode, Detail: body.Detail}
}
