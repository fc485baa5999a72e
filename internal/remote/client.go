// Package remote is the client side of the trubrics manager API: a one-shot
// identity handshake and an optional report push. It is deliberately not a
// durable client — no retries, no backoff; callers decide whether a transport
// failure is fatal.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/trubrics/trubrics-cli/internal/trubric"
)

// ErrRemoteUnavailable marks a transport-level failure talking to the
// trubrics manager, including responses the service itself rejected.
var ErrRemoteUnavailable = errors.New("trubrics manager unavailable")

// AuthResult is the outcome of an identity handshake.
type AuthResult struct {
	OK      bool
	Message string
}

// Client talks to a trubrics manager instance.
type Client struct {
	http *resty.Client
}

// NewClient creates a manager API client.
func NewClient() *Client {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "trubrics-cli")
	return &Client{http: client}
}

// VerifyIdentity performs the one-time handshake that enables remote
// persistence: GET {base}/api/is_user/{identityID}. A body containing an
// `is_user` key signals rejection, with a human-readable message under `msg`;
// any other well-formed response means the identity is accepted.
func (c *Client) VerifyIdentity(ctx context.Context, baseURL, identityID string) (*AuthResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/api/is_user/%s", baseURL, identityID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrRemoteUnavailable, resp.Status())
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: malformed handshake response: %v", ErrRemoteUnavailable, err)
	}
	if _, rejected := body["is_user"]; rejected {
		msg, _ := body["msg"].(string)
		if msg == "" {
			msg = "identity rejected by the trubrics manager"
		}
		return &AuthResult{OK: false, Message: msg}, nil
	}
	return &AuthResult{OK: true}, nil
}

// SaveReport pushes a completed trubric to the manager over the authenticated
// channel. Any transport failure or non-2xx response is reported as
// ErrRemoteUnavailable; whether that aborts anything is the caller's policy.
func (c *Client) SaveReport(ctx context.Context, baseURL, identityID string, t *trubric.Trubric) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(t).
		Post(fmt.Sprintf("%s/api/trubrics/%s", baseURL, identityID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: unexpected status %s", ErrRemoteUnavailable, resp.Status())
	}
	return nil
}
