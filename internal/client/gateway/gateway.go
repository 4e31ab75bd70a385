// Package gateway is the single point of HTTP communication with the
// campustrack backend. It attaches the bearer token, unwraps the
// {success,data,message} envelope and converts non-2xx responses into
// typed *APIError values. Raw HTTP objects never leak to callers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/kv"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// APIError is the typed error raised for non-2xx responses. Status is the
// HTTP status; Code and Message come from the error envelope when the
// backend supplied one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// NotFound reports whether the error is a 404.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Unwrap maps the HTTP status onto the shared sentinel errors so
// errors.Is behaves the same against either store adapter.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	case http.StatusConflict:
		return apperrors.ErrStatusConflict
	case http.StatusUnauthorized:
		return apperrors.ErrNotAuthenticated
	case http.StatusForbidden:
		return apperrors.ErrPermissionDenied
	case http.StatusBadRequest:
		return apperrors.ErrValidationFailed
	}
	return nil
}

// Gateway wraps HTTP calls to the backend.
type Gateway struct {
	baseURL string
	http    *http.Client
	store   *kv.Store
	bus     *bus.Bus

	mu    sync.RWMutex
	token string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.http = c }
}

// WithKV attaches a durable store; the auth token and current user then
// survive a restart.
func WithKV(store *kv.Store) Option {
	return func(g *Gateway) { g.store = store }
}

// WithBus attaches a subscription bus; login and logout broadcast
// userLoggedIn / userLoggedOut through it.
func WithBus(b *bus.Bus) Option {
	return func(g *Gateway) { g.bus = b }
}

// New creates a Gateway for the given base URL, e.g.
// "http://localhost:8080/api/v1".
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store != nil {
		var token string
		if g.store.Get(kv.KeyAuthToken, &token) {
			g.token = token
		}
	}
	return g
}

// Token returns the currently held bearer token, if any.
func (g *Gateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *Gateway) setToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	if g.store == nil {
		return
	}
	if token == "" {
		if err := g.store.Delete(kv.KeyAuthToken); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear persisted token")
		}
		return
	}
	if err := g.store.Put(kv.KeyAuthToken, token); err != nil {
		logger.Warn().Err(err).Msg("Failed to persist token")
	}
}

// envelope mirrors the backend's response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// request performs an HTTP call against the backend and decodes the data
// envelope into out (which may be nil for calls without a useful body).
func (g *Gateway) request(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := g.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		} else if decodeErr == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode data from %s: %w", path, err)
		}
	}
	return nil
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the authenticated session returned by Login.
type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expiresIn"`
	User         models.User `json:"user"`
}

// Login authenticates against the backend. On success the token is held
// (and persisted when a KV store is attached) so subsequent requests carry
// it, and userLoggedIn is broadcast.
func (g *Gateway) Login(ctx context.Context, creds Credentials) (*Session, error) {
	var session Session
	if err := g.request(ctx, http.MethodPost, "/auth/login", creds, &session); err != nil {
		return nil, err
	}
	g.setToken(session.AccessToken)
	if g.store != nil {
		if err := g.store.Put(kv.KeyCurrentUser, session.User); err != nil {
			logger.Warn().Err(err).Msg("Failed to persist current user")
		}
	}
	if g.bus != nil {
		g.bus.Publish(bus.Change{Type: bus.UserLoggedIn, Payload: session.User})
	}
	return &session, nil
}

// Registration is the payload for creating an account.
type Registration struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	StudentID *string `json:"studentId,omitempty"`
	FacultyID *string `json:"facultyId,omitempty"`
}

// Register creates a new account.
func (g *Gateway) Register(ctx context.Context, reg Registration) (*models.User, error) {
	var user models.User
	if err := g.request(ctx, http.MethodPost, "/auth/register", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session server-side and locally, then broadcasts
// userLoggedOut. The local session is dropped even when the server call
// fails.
func (g *Gateway) Logout(ctx context.Context) error {
	err := g.request(ctx, http.MethodPost, "/auth/logout", nil, nil)
	g.setToken("")
	if g.store != nil {
		if derr := g.store.Delete(kv.KeyCurrentUser); derr != nil {
			logger.Warn().Err(derr).Msg("Failed to clear persisted user")
		}
	}
	if g.bus != nil {
		g.bus.Publish(bus.Change{Type: bus.UserLoggedOut})
	}
	return err
}

// CurrentUser returns the persisted user profile from the last login, if
// one survives.
func (g *Gateway) CurrentUser() (models.User, bool) {
	if g.store == nil {
		return models.User{}, false
	}
	var user models.User
	ok := g.store.Get(kv.KeyCurrentUser, &user)
	return user, ok
}

func escape(id string) string {
	return url.PathEscape(id)
}
