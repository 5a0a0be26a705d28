package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Failure kinds surfaced to the caller. They map to user-visible notices,
// never to process termination.
var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrNotFound             = errors.New("not found")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrInferenceUnavailable = errors.New("inference unavailable")
)

// API is the server surface the sync client depends on.
type API interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	CreateSession(ctx context.Context) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	UpdateSession(ctx context.Context, id uuid.UUID, messages []Message, isFirstMessage bool) (Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	Generate(ctx context.Context, prompt, model string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// HTTPClient talks to the chat backend over its JSON envelope protocol.
type HTTPClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

var _ API = &HTTPClient{}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the server's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginData struct {
	Token string `json:"token"`
}

type generateData struct {
	Response string `json:"response"`
}

type modelsData struct {
	Models []string `json:"models"`
}

type updatePayload struct {
	Messages       []Message `json:"messages"`
	IsFirstMessage bool      `json:"is_first_message"`
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}
	_, err := c.do(ctx, "POST", "/api/auth/register", payload, true)
	return err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	data, err := c.do(ctx, "POST", "/api/auth/login", payload, true)
	if err != nil {
		return "", err
	}
	var res loginData
	if err := json.Unmarshal(data, &res); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	c.Token = res.Token
	return res.Token, nil
}

func (c *HTTPClient) CreateSession(ctx context.Context) (Session, error) {
	data, err := c.do(ctx, "POST", "/api/chat/v1/sessions", nil, false)
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context) ([]Session, error) {
	data, err := c.do(ctx, "GET", "/api/chat/v1/sessions", nil, false)
	if err != nil {
		return nil, err
	}
	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) UpdateSession(ctx context.Context, id uuid.UUID, messages []Message, isFirstMessage bool) (Session, error) {
	payload := updatePayload{Messages: messages, IsFirstMessage: isFirstMessage}
	data, err := c.do(ctx, "PUT", "/api/chat/v1/sessions/"+id.String(), payload, false)
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (c *HTTPClient) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, "DELETE", "/api/chat/v1/sessions/"+id.String(), nil, false)
	return err
}

func (c *HTTPClient) Generate(ctx context.Context, prompt, model string) (string, error) {
	payload := map[string]string{"message": prompt, "model": model}
	data, err := c.do(ctx, "POST", "/api/chat", payload, true)
	if err != nil {
		return "", err
	}
	var res generateData
	if err := json.Unmarshal(data, &res); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return res.Response, nil
}

func (c *HTTPClient) ListModels(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, "GET", "/api/models", nil, true)
	if err != nil {
		return nil, err
	}
	var res modelsData
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}
	return res.Models, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload interface{}, public bool) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !public {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		return nil, fmt.Errorf("%s: %w", env.Message, kindFromStatus(resp.StatusCode))
	}

	return env.Data, nil
}

func kindFromStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusServiceUnavailable:
		return ErrStorageUnavailable
	case http.StatusBadGateway:
		return ErrInferenceUnavailable
	default:
		return fmt.Errorf("server error (status %d)", status)
	}
}
