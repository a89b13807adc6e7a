package admin

import (
	"net/url"
	"strings"
)

// LoginRequest is the admin login form.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginRequestFromForm reads the login form. The username is trimmed, the
// password is taken as typed.
func LoginRequestFromForm(form url.Values) *LoginRequest {
	return &LoginRequest{
		Username: strings.TrimSpace(form.Get("username")),
		Password: form.Get("password"),
	}
}
