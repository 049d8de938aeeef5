// Package auth answers whether the caller of a request is an administrator.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hoanghai1803/postdesk/internal/config"
)

// TokenCookie is the cookie the admin page reads the credential from when no
// Authorization header is present.
const TokenCookie = "admin_token"

// Gate decides whether a request comes from an administrator. An error means
// the decision itself could not be made.
type Gate interface {
	IsAdmin(r *http.Request) (bool, error)
}

// GateFunc adapts a plain function to the Gate interface.
type GateFunc func(r *http.Request) (bool, error)

// IsAdmin calls f(r).
func (f GateFunc) IsAdmin(r *http.Request) (bool, error) {
	return f(r)
}

// credential extracts the bearer token from the Authorization header, falling
// back to the admin_token cookie. It returns "" when neither is set.
func credential(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// DenyAll refuses every request.
var DenyAll = GateFunc(func(*http.Request) (bool, error) { return false, nil })

// FromConfig builds the gate selected by cfg.Mode. Token mode without a hash
// yields DenyAll.
func FromConfig(cfg config.AdminConfig) (Gate, error) {
	switch cfg.Mode {
	case config.ModeJWT:
		g, err := NewJWTGate(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ModeToken, "":
		if cfg.TokenHash == "" {
			return DenyAll, nil
		}
		g, err := NewTokenGate(cfg.TokenHash)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown admin mode %q", cfg.Mode)
	}
}
