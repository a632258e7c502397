// Package api is the GraphQL client for the Crooked Finger backend.
//
// The backend exposes one HTTP endpoint that accepts POSTed GraphQL
// operations. Every method issues exactly one request: there are no
// retries, no backoff loops, and no circuit breaking. Callers decide
// how to degrade when an operation fails; the sentinel errors in this
// package tell them what went wrong.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"
)

// TokenSource supplies the bearer token attached to each request.
type TokenSource interface {
	// Token returns the current token. ok is false when no user is
	// signed in.
	Token() (token string, ok bool)
}

// StaticToken is a TokenSource with a fixed value.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, bool) { return string(t), t != "" }

// Client talks to one backend endpoint. It is safe for concurrent use.
type Client struct {
	endpoint  string
	client    *http.Client
	tokens    TokenSource
	userAgent string
	logger    *slog.Logger

	flights singleflight.Group
}

// New creates a client for the GraphQL endpoint at url.
func New(url string, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("api: endpoint is empty")
	}
	c := &Client{
		endpoint: url,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

type gqlRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlError struct {
	Message string `json:"message"`
}

// do executes one GraphQL operation and decodes the data envelope into
// out. out may be nil when the caller ignores the result.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{
		OperationName: op,
		Query:         query,
		Variables:     vars,
	})
	if err != nil {
		return fmt.Errorf("api: %s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("api: %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log().Debug("graphql request", "op", op)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: %w", op, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("api: %s: %w", op, ErrUnauthenticated)
	case resp.StatusCode >= 500:
		return fmt.Errorf("api: %s: %s: %w", op, resp.Status, ErrUnavailable)
	default:
		return fmt.Errorf("api: %s: unexpected status %s", op, resp.Status)
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("api: %s: decode response: %w", op, err)
	}
	if len(envelope.Errors) > 0 {
		err := graphQLError(op, envelope.Errors)
		c.log().Debug("graphql error", "op", op, "err", err)
		return err
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("api: %s: empty response data", op)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("api: %s: decode data: %w", op, err)
	}
	return nil
}
