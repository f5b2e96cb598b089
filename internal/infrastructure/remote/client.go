// Package remote implements the auth gateway against the upstream member
// API. Every failure is normalized into a domain.AuthError so callers branch
// on the kind instead of probing response bodies.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the upstream member API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL. A default timeout is
// applied when none is provided.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// loginRequest is the upstream login body. The method discriminator and the
// per-method fields are derived from the credentials union.
type loginRequest struct {
	LoginType string `json:"login_type"`
	Email     string `json:"email,omitempty"`
	PhoneCode string `json:"code_telephone,omitempty"`
	Phone     string `json:"telephone,omitempty"`
	Password  string `json:"password"`
}

type authPayload struct {
	Token   string        `json:"token"`
	Member  domain.Member `json:"member"`
	Message string        `json:"message"`
}

// Login exchanges credentials for a (token, member) pair. Invalid input is
// rejected locally; nothing is sent upstream for it.
func (c *Client) Login(ctx context.Context, creds domain.LoginCredentials) (string, domain.Member, error) {
	if err := domain.Validate(creds); err != nil {
		return "", domain.Member{}, err
	}

	var body loginRequest
	switch lc := creds.(type) {
	case domain.EmailLogin:
		body = loginRequest{LoginType: "email", Email: lc.Email, Password: lc.Password}
	case domain.PhoneLogin:
		body = loginRequest{LoginType: "phone", PhoneCode: lc.DialCode, Phone: lc.Number, Password: lc.Password}
	default:
		return "", domain.Member{}, domain.NewAuthError(domain.KindInvalidInput, "unsupported login method", nil)
	}

	var payload authPayload
	if err := c.call(ctx, http.MethodPost, "/auth/login", "", body, &payload, loginErrors); err != nil {
		return "", domain.Member{}, err
	}
	return payload.Token, payload.Member, nil
}

// Register forwards a registration request.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (domain.Member, error) {
	var payload authPayload
	if err := c.call(ctx, http.MethodPost, "/auth/register", "", in, &payload, loginErrors); err != nil {
		return domain.Member{}, err
	}
	return payload.Member, nil
}

// Profile fetches the authenticated member's current record.
func (c *Client) Profile(ctx context.Context, token string) (domain.Member, error) {
	var member domain.Member
	if err := c.call(ctx, http.MethodGet, "/members/profile", token, nil, &member, sessionErrors); err != nil {
		return domain.Member{}, err
	}
	return member, nil
}

// UpdateProfile submits profile changes and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, token string, in ports.ProfileUpdateInput) (domain.Member, error) {
	var member domain.Member
	if err := c.call(ctx, http.MethodPut, "/members/profile", token, in, &member, sessionErrors); err != nil {
		return domain.Member{}, err
	}
	return member, nil
}

// CompleteProfile submits the post-onboarding fields.
func (c *Client) CompleteProfile(ctx context.Context, token string, in ports.ProfileUpdateInput) (domain.Member, error) {
	var member domain.Member
	if err := c.call(ctx, http.MethodPost, "/members/complete-profile", token, in, &member, sessionErrors); err != nil {
		return domain.Member{}, err
	}
	return member, nil
}

// errorMapper classifies a non-2xx upstream status. Login-shaped calls treat
// 401 as an explicit refusal (bad credentials); authenticated calls treat it
// as a stale session.
type errorMapper func(status int, message string) *domain.AuthError

func loginErrors(status int, message string) *domain.AuthError {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict, http.StatusBadRequest:
		return domain.NewAuthError(domain.KindRejected, message, nil)
	default:
		return domain.NewAuthError(domain.KindUnreachable, message, nil)
	}
}

func sessionErrors(status int, message string) *domain.AuthError {
	switch status {
	case http.StatusUnauthorized:
		return domain.NewAuthError(domain.KindUnauthenticated, "session expired", nil)
	case http.StatusForbidden, http.StatusNotFound, http.StatusConflict, http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewAuthError(domain.KindRejected, message, nil)
	default:
		return domain.NewAuthError(domain.KindUnreachable, message, nil)
	}
}

func (c *Client) call(ctx context.Context, method, path, token string, in, out any, mapError errorMapper) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewAuthError(domain.KindUnreachable, "member API unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp.StatusCode, upstreamMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewAuthError(domain.KindUnreachable, "malformed response from member API", err)
	}
	return nil
}

// upstreamMessage extracts a human-readable message from an error body,
// falling back to a generic one when the body is not the expected envelope.
func upstreamMessage(body io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return "request refused by member API"
}
