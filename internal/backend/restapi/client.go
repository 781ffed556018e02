// Package restapi implements the service.Service interface over the task
// REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

// RequestIDHeader carries a per-request id for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New creates a client from cfg. When cfg.APIToken is set every request
// carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	httpClient := &http.Client{}
	if cfg.APIToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	httpClient.Timeout = cfg.Timeout

	return NewWithHTTPClient(cfg.APIBaseURL, httpClient, cfg.Logger), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: config.NormalizeBaseURL(baseURL),
		http:    httpClient,
		log:     log,
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticate implements service.Service.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		UserID string `json:"user_id"`
	}
	status, body, err := c.do(ctx, http.MethodPost, "/login", credentials{username, password})
	if err != nil {
		return "", err
	}
	if !success(status) {
		return "", apiError(service.ErrInvalidCredentials, status, body)
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.UserID == "" {
		return "", &service.Error{Kind: service.ErrServer, Status: status, Message: "login response has no user_id", Err: err}
	}
	return resp.UserID, nil
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, username, password string) error {
	status, body, err := c.do(ctx, http.MethodPost, "/register", credentials{username, password})
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusCreated:
		return nil
	case status == http.StatusConflict:
		return apiError(service.ErrUsernameTaken, status, body)
	case status >= 400 && status < 500:
		return apiError(service.ErrValidationFailed, status, body)
	}
	return apiError(service.ErrServer, status, body)
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context, userID string) ([]service.Task, error) {
	path := "/tasks?" + url.Values{"user_id": {userID}}.Encode()
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(service.ErrServer, status, body)
	}

	var items []wireTask
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &service.Error{Kind: service.ErrServer, Status: status, Message: "invalid task list", Err: err}
	}
	result := make([]service.Task, 0, len(items))
	for _, it := range items {
		result = append(result, it.toTask(userID))
	}
	return result, nil
}

type createRequest struct {
	Title    string  `json:"title"`
	UserID   string  `json:"user_id"`
	Priority string  `json:"priority"`
	DueDate  *string `json:"due_date"`
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	req := createRequest{Title: t.Title, UserID: t.UserID, Priority: string(t.Priority)}
	if t.DueDate != "" {
		req.DueDate = &t.DueDate
	}
	status, body, err := c.do(ctx, http.MethodPost, "/tasks", req)
	if err != nil {
		return service.Task{}, err
	}
	if !success(status) {
		return service.Task{}, apiError(service.ErrServer, status, body)
	}

	var created wireTask
	if err := json.Unmarshal(body, &created); err != nil {
		return service.Task{}, &service.Error{Kind: service.ErrServer, Status: status, Message: "invalid task", Err: err}
	}
	task := created.toTask(t.UserID)
	if task.ID == "" {
		return service.Task{}, &service.Error{Kind: service.ErrServer, Status: status, Message: "created task has no id"}
	}
	return task, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) error {
	body := map[string]any{}
	if patch.Completed != nil {
		body["completed"] = *patch.Completed
	}
	status, resp, err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), body)
	if err != nil {
		return err
	}
	if !success(status) {
		return apiError(service.ErrServer, status, resp)
	}
	return nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	status, resp, err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return apiError(service.ErrServer, status, resp)
	}
	return nil
}

// do sends one request and reads the whole response. Only transport
// failures are returned as errors; status handling is left to callers.
func (c *Client) do(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, &service.Error{Kind: service.ErrNetwork, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.With("method", method, "path", req.URL.Path, "request_id", requestID)
	log.Debug("request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", "err", err)
		return 0, nil, &service.Error{Kind: service.ErrNetwork, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &service.Error{Kind: service.ErrNetwork, Status: resp.StatusCode, Err: err}
	}
	log.Debug("response", "status", resp.StatusCode, "bytes", len(body))
	return resp.StatusCode, body, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// apiError builds a typed error, picking up the server's {"error": "..."}
// message when the body has one.
func apiError(kind error, status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	return &service.Error{Kind: kind, Status: status, Message: strings.TrimSpace(payload.Error)}
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
