// Package remote implements the orders repository against another
// hingmart instance over HTTP. It lets a device work against a central
// backend and mirror its order list into local storage.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/auth"
	"hingmart/internal/domain/orders"
	"hingmart/pkg/logger"
)

// Config holds remote backend settings.
type Config struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
}

// Client talks to a remote hingmart backend. It signs requests with a
// Bearer token and transparently refreshes it once when a request comes
// back 401 or 403.
type Client struct {
	http    *http.Client
	baseURL string
	email   string
	pass    string

	tokenMu      sync.RWMutex
	accessToken  string
	refreshToken string

	// syncMu serializes Sync so overlapping pulls cannot interleave
	// their ReplaceAll writes.
	syncMu sync.Mutex

	log *logger.Logger
}

var _ orders.Repository = (*Client)(nil)

func New(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		email:   cfg.Email,
		pass:    cfg.Password,
		log:     log.WithComponent("remote-client"),
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// do executes an authenticated request, refreshing the token once when
// the backend rejects it.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, raw, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	if resp.StatusCode >= 400 {
		return c.toError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.NewNetwork(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, apperror.NewNetwork(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperror.NewNetwork(fmt.Errorf("read response: %w", err))
	}
	return resp, raw, nil
}

func (c *Client) currentToken() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.accessToken
}

// refresh exchanges the refresh token, falling back to a credential login
// when the exchange fails.
func (c *Client) refresh(ctx context.Context) error {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.refreshToken != "" {
		var pair auth.TokenPair
		err := c.unauthenticated(ctx, http.MethodPost, "/api/v1/auth/refresh",
			map[string]string{"refreshToken": c.refreshToken}, &pair)
		if err == nil {
			c.accessToken = pair.AccessToken
			c.refreshToken = pair.RefreshToken
			return nil
		}
		c.log.WithContext(ctx).Warnw("token refresh failed, retrying with credentials", "error", err)
	}

	var login struct {
		Tokens auth.TokenPair `json:"tokens"`
	}
	err := c.unauthenticated(ctx, http.MethodPost, "/api/v1/auth/login",
		auth.Credentials{Email: c.email, Password: c.pass}, &login)
	if err != nil {
		return apperror.NewUnauthorized("remote authentication failed")
	}
	c.accessToken = login.Tokens.AccessToken
	c.refreshToken = login.Tokens.RefreshToken
	return nil
}

func (c *Client) unauthenticated(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.NewNetwork(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.NewNetwork(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode >= 400 {
		return c.toError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) toError(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	message := body.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusNotFound:
		return apperror.NewNotFound("resource", message)
	case http.StatusUnauthorized:
		return apperror.NewUnauthorized(message)
	case http.StatusForbidden:
		return apperror.NewForbidden(message)
	case http.StatusUnprocessableEntity:
		if body.Error.Code == apperror.CodeTransition {
			return apperror.NewTransition(message)
		}
		return apperror.NewValidation(message)
	case http.StatusBadRequest:
		return apperror.NewValidation(message)
	case http.StatusConflict:
		return apperror.NewConflict(message)
	default:
		return apperror.NewNetwork(fmt.Errorf("remote error %d: %s", status, message))
	}
}

func (c *Client) List(ctx context.Context) ([]*orders.Order, error) {
	var list []*orders.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetByID(ctx context.Context, orderID string) (*orders.Order, error) {
	var o orders.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/"+orderID, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) Create(ctx context.Context, o *orders.Order) error {
	return c.do(ctx, http.MethodPost, "/api/v1/orders", o, o)
}

func (c *Client) Update(ctx context.Context, o *orders.Order) error {
	return c.do(ctx, http.MethodPut, "/api/v1/orders/"+o.ID, o, o)
}

func (c *Client) Delete(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/orders/"+orderID, nil, nil)
}

func (c *Client) ReplaceAll(ctx context.Context, list []*orders.Order) error {
	return c.do(ctx, http.MethodPut, "/api/v1/orders", list, nil)
}

// Sync pulls the remote order list and replaces the local store with it.
// Concurrent Sync calls run one at a time.
func (c *Client) Sync(ctx context.Context, local orders.Repository) (int, error) {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	list, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	// Remote payloads may carry records written by older revisions, so
	// derived amounts are recomputed before the swap.
	orders.NormalizeAll(list)
	if err := local.ReplaceAll(ctx, list); err != nil {
		return 0, err
	}
	c.log.WithContext(ctx).Infow("orders synced from remote", "count", len(list))
	return len(list), nil
}
