package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/harrylevesque/tododemo/internal/models"
)

// ErrUserNotFound is returned by User on a 404.
var ErrUserNotFound = errors.New("user not found")

// Envelope mirrors the server's response shape.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Todos   []models.TodoItem `json:"todos,omitempty"`
}

// Client talks to the demo API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Todos(ctx context.Context) ([]models.TodoItem, error) {
	env, err := c.envelope(ctx, http.MethodGet, "/api/todo", nil)
	if err != nil {
		return nil, err
	}
	return env.Todos, nil
}

func (c *Client) AddTodo(ctx context.Context, title string) (Envelope, error) {
	return c.envelope(ctx, http.MethodPost, "/api/todo", map[string]string{"title": title})
}

// DeleteTodo removes the item at index.
func (c *Client) DeleteTodo(ctx context.Context, index int) (Envelope, error) {
	return c.envelope(ctx, http.MethodDelete, "/api/todo", map[string]int{"index": index})
}

// DeleteTodoByID removes the item with the given id.
func (c *Client) DeleteTodoByID(ctx context.Context, id string) (Envelope, error) {
	return c.envelope(ctx, http.MethodDelete, "/api/todo", map[string]string{"id": id})
}

// ClearTodos sends a bodiless DELETE.
func (c *Client) ClearTodos(ctx context.Context) (Envelope, error) {
	return c.envelope(ctx, http.MethodDelete, "/api/todo", nil)
}

// SetCompleted marks the item at index done or not done. The server reads
// its "completed" field inverted, so the wire value is the negation.
func (c *Client) SetCompleted(ctx context.Context, index int, done bool) (Envelope, error) {
	return c.envelope(ctx, http.MethodPut, "/api/todo", map[string]interface{}{
		"index":     index,
		"completed": !done,
	})
}

func (c *Client) Login(ctx context.Context, username, password string) (Envelope, error) {
	return c.envelope(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) User(ctx context.Context, id int) (models.User, error) {
	var u models.User
	status, err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.Itoa(id), nil, &u)
	if status == http.StatusNotFound {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *Client) envelope(ctx context.Context, method, path string, payload interface{}) (Envelope, error) {
	var env Envelope
	_, err := c.do(ctx, method, path, payload, &env)
	return env, err
}

// do sends payload as JSON (no body when nil) and decodes the response
// into out. Any 2xx or 4xx JSON response is decoded; other statuses fail.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) (int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || (resp.StatusCode >= 300 && resp.StatusCode < 400) || resp.StatusCode >= 500 {
		return resp.StatusCode, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return resp.StatusCode, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
