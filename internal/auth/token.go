package auth

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenGate admits callers presenting the shared admin token whose bcrypt
// hash is configured on the server.
type TokenGate struct {
	hash []byte
}

// NewTokenGate creates a TokenGate from a bcrypt hash of the admin token.
func NewTokenGate(hash string) (*TokenGate, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid admin token hash: %w", err)
	}
	return &TokenGate{hash: []byte(hash)}, nil
}

// IsAdmin reports whether the request carries the admin token.
func (g *TokenGate) IsAdmin(r *http.Request) (bool, error) {
	token := credential(r)
	if token == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(g.hash, []byte(token))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		zap.S().Debugw("admin token mismatch", "path", r.URL.Path)
		return false, nil
	default:
		return false, fmt.Errorf("comparing admin token: %w", err)
	}
}

// HashToken returns the bcrypt hash to configure for the given admin token.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing admin token: %w", err)
	}
	return string(hash), nil
}
