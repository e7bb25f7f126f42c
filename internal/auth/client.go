// Package auth proxies credential flows to the Firebase Auth REST API. No
// credentials or sessions are stored locally; the backend only forwards
// tokens issued upstream.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the production identity-provider endpoint.
const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// UpstreamError carries the provider's machine-readable error code,
// e.g. EMAIL_NOT_FOUND or EMAIL_EXISTS.
type UpstreamError struct {
	Code string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("firebase: %s", e.Code)
}

// User identifies an authenticated account.
type User struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// Session is the result of a successful sign-up or sign-in.
type Session struct {
	User         User    `json:"user"`
	Token        string  `json:"token"`
	RefreshToken *string `json:"refresh_token"`
}

// Client wraps interactions with the Firebase Auth REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a new client. An empty baseURL selects the production
// endpoint; tests point it at a local fake.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

func (r accountResponse) session() Session {
	user := User{ID: r.LocalID, Email: r.Email}
	if r.DisplayName != "" {
		name := r.DisplayName
		user.Name = &name
	}
	sess := Session{User: user, Token: r.IDToken}
	if r.RefreshToken != "" {
		token := r.RefreshToken
		sess.RefreshToken = &token
	}
	return sess
}

// SignUp registers a new account and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string, displayName *string) (Session, error) {
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	if displayName != nil && *displayName != "" {
		payload["displayName"] = *displayName
	}
	var resp accountResponse
	if err := c.post(ctx, "accounts:signUp", "SIGNUP_FAILED", payload, &resp); err != nil {
		return Session{}, err
	}
	return resp.session(), nil
}

// SignIn exchanges email/password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var resp accountResponse
	if err := c.post(ctx, "accounts:signInWithPassword", "LOGIN_FAILED", payload, &resp); err != nil {
		return Session{}, err
	}
	return resp.session(), nil
}

// SendPasswordReset asks the provider to mail a reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	payload := map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return c.post(ctx, "accounts:sendOobCode", "RESET_FAILED", payload, &struct{}{})
}

func (c *Client) post(ctx context.Context, endpoint, fallbackCode string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth: call %s: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		var upstream struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		code := fallbackCode
		if err := json.NewDecoder(resp.Body).Decode(&upstream); err == nil && upstream.Error.Message != "" {
			code = upstream.Error.Message
		}
		return &UpstreamError{Code: code}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
