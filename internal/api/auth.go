package api

import (
	"context"
	"strconv"

	"github.com/shopease/go_shop/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Login exchanges credentials for a session. The backend issues numeric
// user ids; they are opaque strings everywhere downstream.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.UserSession, error) {
	var resp loginResponse
	if err := c.postJSON(ctx, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &domain.UserSession{
		UserID: strconv.FormatInt(resp.UserID, 10),
		Email:  email,
		Name:   resp.Name,
		Admin:  resp.IsAdmin,
	}, nil
}

type signupRequest struct {
	Name     string `json:"name"`
	MobileNo string `json:"mobileNo"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. A 409 from the backend means the email is
// already taken and surfaces as an error.
func (c *Client) Signup(ctx context.Context, name, mobileNo, email, password string) error {
	return c.postJSON(ctx, "/signup", signupRequest{
		Name:     name,
		MobileNo: mobileNo,
		Email:    email,
		Password: password,
	}, nil)
}
