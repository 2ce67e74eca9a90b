package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/pkg/identity"
)

// IdentityClient is responsible for all communication with the identity
// provider. It holds the session token issued at sign-in and attaches it
// to the sign-out call.
type IdentityClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	mu    sync.Mutex
	token string
}

// NewIdentityClient creates a new client for the identity provider.
func NewIdentityClient(baseURL string, logger zerolog.Logger) *IdentityClient {
	return &IdentityClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With().Str("client", "identity").Logger(),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// SignIn exchanges credentials for a session.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (identity.User, error) {
	return c.startSession(ctx, "/v1/signin", email, password)
}

// SignUp registers a new account and starts its session.
func (c *IdentityClient) SignUp(ctx context.Context, email, password string) (identity.User, error) {
	return c.startSession(ctx, "/v1/signup", email, password)
}

// SignOut revokes the held session token.
func (c *IdentityClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return nil
	}

	url := c.baseURL + "/v1/signout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create sign-out request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute sign-out request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("identity provider returned unexpected status code for sign-out: %d", resp.StatusCode)
	}

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.logger.Info().Msg("session revoked")
	return nil
}

func (c *IdentityClient) startSession(ctx context.Context, path, email, password string) (identity.User, error) {
	payload, err := json.Marshal(credentialsRequest{Email: email, Password: password})
	if err != nil {
		return identity.User{}, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return identity.User{}, fmt.Errorf("failed to create session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return identity.User{}, fmt.Errorf("failed to execute session request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return identity.User{}, fmt.Errorf("credentials rejected for %s", email)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return identity.User{}, fmt.Errorf("identity provider returned unexpected status code: %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return identity.User{}, fmt.Errorf("failed to decode session response: %w", err)
	}

	c.mu.Lock()
	c.token = session.Token
	c.mu.Unlock()

	c.logger.Info().Str("user_id", session.UserID).Msg("session started")
	return identity.User{ID: session.UserID, Email: session.Email}, nil
}
