// Package api implements the client for the remote task service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"taskhub/internal/notify"
	"taskhub/internal/task"
	"taskhub/internal/wire"
)

// DefaultTimeout bounds each API call.
const DefaultTimeout = 10 * time.Second

// Authenticator supplies the bearer token for every request and is told
// when the service has rejected the credential.
type Authenticator interface {
	oauth2.TokenSource

	// SignedOut is invoked after the service answers 401, so the stored
	// credential can be discarded.
	SignedOut()
}

// ListParams are the server-side list query parameters, passed through
// verbatim. Status is all|pending|completed, Sort is created|title|due_date.
// Empty values are omitted.
type ListParams struct {
	Status string
	Sort   string
}

// Client issues task operations against the remote service. Every call
// requires a token from the Authenticator; mutating calls also emit a
// user-facing notification for both outcomes.
type Client struct {
	baseURL string
	http    *http.Client
	auth    Authenticator
	notify  notify.Notifier
	log     zerolog.Logger
}

// New creates a client for the service at baseURL.
func New(baseURL string, auth Authenticator, n notify.Notifier, logger zerolog.Logger) *Client {
	if n == nil {
		n = notify.Discard{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		auth:    auth,
		notify:  n,
		log:     logger,
	}
}

// WithHTTPClient replaces the underlying HTTP client (for testing).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// List fetches the user's tasks.
func (c *Client) List(ctx context.Context, params ListParams) ([]task.Task, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	data, err := c.do(ctx, http.MethodGet, "/api/tasks", q, nil)
	if err != nil {
		return nil, c.fail(err, "Failed to fetch tasks")
	}
	tasks, err := wire.NormalizeTaskList(data)
	if err != nil {
		return nil, c.fail(err, "Failed to fetch tasks")
	}
	return tasks, nil
}

// Create creates a task from a draft and returns the created task.
func (c *Client) Create(ctx context.Context, draft task.Draft) (task.Task, error) {
	if err := draft.Validate(); err != nil {
		c.notify.Error(err.Error())
		return task.Task{}, err
	}
	data, err := c.do(ctx, http.MethodPost, "/api/tasks", nil, draft)
	if err != nil {
		return task.Task{}, c.fail(err, "Failed to create task")
	}
	created, _, err := wire.NormalizeTask(data)
	if err != nil {
		return task.Task{}, c.fail(err, "Failed to create task")
	}
	c.notify.Success("Task created successfully!")
	return created, nil
}

// Update applies a partial patch to the task with the given id. The
// returned field set names the keys the response carried; the service
// may echo only what changed.
func (c *Client) Update(ctx context.Context, id int, patch task.Patch) (task.Task, task.Fields, error) {
	if err := patch.Validate(); err != nil {
		c.notify.Error(err.Error())
		return task.Task{}, nil, err
	}
	data, err := c.do(ctx, http.MethodPut, "/api/tasks/"+strconv.Itoa(id), nil, patch)
	if err != nil {
		return task.Task{}, nil, c.fail(err, "Failed to update task")
	}
	updated, fields, err := wire.NormalizeTask(data)
	if err != nil {
		return task.Task{}, nil, c.fail(err, "Failed to update task")
	}
	c.notify.Success("Task updated successfully!")
	return updated, fields, nil
}

// Remove deletes the task with the given id. The service answers
// 204 No Content on success.
func (c *Client) Remove(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/tasks/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return c.fail(err, "Failed to delete task")
	}
	c.notify.Success("Task deleted successfully!")
	return nil
}

// ToggleComplete instructs the service to flip the task's completion
// state. The notification text is chosen from the result, not from the
// pre-toggle state.
func (c *Client) ToggleComplete(ctx context.Context, id int) (task.Task, task.Fields, error) {
	data, err := c.do(ctx, http.MethodPatch, "/api/tasks/"+strconv.Itoa(id)+"/complete", nil, nil)
	if err != nil {
		return task.Task{}, nil, c.fail(err, "Failed to update task status")
	}
	toggled, fields, err := wire.NormalizeTask(data)
	if err != nil {
		return task.Task{}, nil, c.fail(err, "Failed to update task status")
	}
	if toggled.Completed {
		c.notify.Success("Task marked as complete!")
	} else {
		c.notify.Success("Task marked as active!")
	}
	return toggled, fields, nil
}

// bearer returns the current access token or ErrUnauthenticated.
func (c *Client) bearer() (string, error) {
	if c.auth == nil {
		return "", ErrUnauthenticated
	}
	tok, err := c.auth.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		return "", ErrUnauthenticated
	}
	return tok.AccessToken, nil
}

// do issues an authenticated request and returns the raw body. A 204 or
// empty body returns nil with no parse attempt.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	token, err := c.bearer()
	if err != nil {
		return nil, err
	}
	return c.send(ctx, method, path, query, body, token)
}

// send issues a request. An empty token means no Authorization header
// (sign-in and sign-up only).
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, token string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := encodeBody(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).
			Str("request_id", requestID).Err(err).Msg("transport failure")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	c.log.Debug().Str("method", method).Str("path", path).
		Str("request_id", requestID).Int("status", resp.StatusCode).
		Msg("api call")

	if resp.StatusCode == http.StatusUnauthorized && c.auth != nil && token != "" {
		c.auth.SignedOut()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{
			Status:  resp.StatusCode,
			Message: wire.DecodeError(resp.StatusCode, data),
		}
	}
	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// encodeBody serializes an outgoing value with the service's snake_case
// field names.
func encodeBody(body any) ([]byte, error) {
	camel, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(camel, &m); err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return json.Marshal(wire.ToWireFormat(m))
}

// fail surfaces a failure as a user notification and hands the error back
// to the caller.
func (c *Client) fail(err error, fallback string) error {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	c.notify.Error(msg)
	return err
}
