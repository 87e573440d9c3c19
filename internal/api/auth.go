package api

import (
	"context"
	"net/http"
	"strings"
)

// SignupRequest registers a password account
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	RealName string `json:"real_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Signup creates an account. The caller logs in afterwards.
func (c *Client) Signup(ctx context.Context, req *SignupRequest) error {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return NewError(KindValidation, "/auth/signup", "username and password are required")
	}
	if strings.TrimSpace(req.Name) == "" {
		req.Name = req.Username
	}
	return c.do(ctx, http.MethodPost, "/auth/signup", nil, req, nil)
}
