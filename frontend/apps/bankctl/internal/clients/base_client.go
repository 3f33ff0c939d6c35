package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotLoggedIn is returned before any network call when an authenticated
	// request is attempted without a stored token.
	ErrNotLoggedIn = errors.New("You are not logged in.")
	// ErrUnexpectedResponse means a successful response did not have the expected shape.
	ErrUnexpectedResponse = errors.New("unexpected response from server")
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token for authenticated requests.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// Request describes one backend call. Form takes precedence over JSON when both are set.
type Request struct {
	Method string
	Path   string
	JSON   interface{}
	Form   url.Values
	Auth   bool
}

// Response is a successful backend reply. Data is nil when the body is not JSON.
type Response struct {
	Status int
	Body   []byte
	Data   interface{}
}

// Text returns the raw body.
func (r *Response) Text() string {
	return string(r.Body)
}

// Value returns the parsed JSON, or the raw text when the body was not JSON.
func (r *Response) Value() interface{} {
	if r.Data != nil {
		return r.Data
	}
	return r.Text()
}

// APIError is a non-2xx reply. Message follows the detail > body > status order.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// BaseClient sends requests to the banking API.
type BaseClient struct {
	baseURL string
	client  HTTPDoer
	tokens  TokenSource
	logger  *zap.Logger
}

// NewBaseClient builds client with base URL. tokens may be nil for clients that never
// authenticate.
func NewBaseClient(baseURL string, client HTTPDoer, tokens TokenSource, logger *zap.Logger) *BaseClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *BaseClient) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Do executes the request and normalizes failures into *APIError.
func (c *BaseClient) Do(ctx context.Context, r Request) (*Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	headers := make(http.Header)
	var body io.Reader

	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("clients: encode body: %w", err)
		}
		headers.Set("Content-Type", "application/json")
		body = bytes.NewReader(data)
	}

	if r.Form != nil {
		headers.Set("Content-Type", "application/x-www-form-urlencoded")
		body = strings.NewReader(r.Form.Encode())
	}

	if r.Auth {
		token, err := c.bearer(ctx)
		if err != nil {
			return nil, err
		}
		headers.Set("Authorization", "Bearer "+token)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(r.Path), body)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", r.Path), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("clients: read body: %w", err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", r.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		data = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, data, raw),
			Body:    raw,
		}
	}

	return &Response{Status: resp.StatusCode, Body: raw, Data: data}, nil
}

// DoJSON executes the request and decodes a successful body into out.
func (c *BaseClient) DoJSON(ctx context.Context, r Request, out interface{}) error {
	resp, err := c.Do(ctx, r)
	if err != nil {
		return err
	}
	if resp.Data == nil {
		return fmt.Errorf("%w: %s %s", ErrUnexpectedResponse, strings.ToUpper(methodOrGet(r.Method)), r.Path)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

func (c *BaseClient) bearer(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", ErrNotLoggedIn
	}
	token, ok, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("clients: read token: %w", err)
	}
	if !ok || token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

func methodOrGet(method string) string {
	if method == "" {
		return http.MethodGet
	}
	return method
}

// errorMessage picks the server detail when present, else the raw body, else a status message.
func errorMessage(status int, data interface{}, raw []byte) string {
	if obj, ok := data.(map[string]interface{}); ok {
		if msg := detailMessage(obj["detail"]); msg != "" {
			return msg
		}
	}
	if text := string(raw); text != "" {
		return text
	}
	return fmt.Sprintf("Request failed (%d)", status)
}

// detailMessage flattens FastAPI-style details: a string, or a list of {msg: ...} items.
func detailMessage(detail interface{}) string {
	switch d := detail.(type) {
	case nil:
		return ""
	case string:
		return d
	case bool:
		if !d {
			return ""
		}
	case float64:
		if d == 0 {
			return ""
		}
	case []interface{}:
		if len(d) == 0 {
			return ""
		}
		msgs := make([]string, 0, len(d))
		for _, item := range d {
			if obj, ok := item.(map[string]interface{}); ok {
				if msg, ok := obj["msg"].(string); ok && msg != "" {
					msgs = append(msgs, msg)
				}
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	encoded, err := json.Marshal(detail)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
