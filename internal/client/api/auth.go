package api

import (
	"context"
	"encoding/json"
	"strings"
)

// LoginResponse is the answer of the credentials step.
type LoginResponse struct {
	RequiresOTP bool   `json:"requiresOTP"`
	Message     string `json:"message"`
}

// TokenResponse is the answer of the one-time-code step.
type TokenResponse struct {
	Token string `json:"token"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

// Login submits the credentials; the backend answers whether a one-time code
// was sent.
func (c *Client) Login(ctx context.Context, identifier, password string) (LoginResponse, error) {
	var resp LoginResponse
	raw, err := c.do(ctx, "POST", "/auth/login", nil, credentials{Email: identifier, Password: password})
	if err != nil {
		return resp, err
	}
	if err := decodeAuth("/auth/login", raw, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// ValidateLogin submits the credentials together with the one-time code and
// returns the issued bearer token.
func (c *Client) ValidateLogin(ctx context.Context, identifier, password, code string) (TokenResponse, error) {
	const path = "/auth/login/validate"

	var resp TokenResponse
	raw, err := c.do(ctx, "POST", path, nil, credentials{Email: identifier, Password: password, OTP: code})
	if err != nil {
		return resp, err
	}
	if err := decodeAuth(path, raw, &resp); err != nil {
		return resp, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return resp, &ParseError{Path: path, Reason: "token is missing"}
	}
	return resp, nil
}

// decodeAuth accepts both a flat body and one wrapped in {"data": ...}.
func decodeAuth(path string, raw []byte, out any) error {
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return &ParseError{Path: path, Reason: "body is not a JSON object"}
	}

	body := raw
	if len(wrapped.Data) > 0 && wrapped.Data[0] == '{' {
		body = wrapped.Data
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Path: path, Reason: err.Error()}
	}
	return nil
}
