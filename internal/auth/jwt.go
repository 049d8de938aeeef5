package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

// RoleAdmin is the role claim value that grants access.
const RoleAdmin = "admin"

// Claims are the JWT claims the gate understands.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

// JWTGate admits callers presenting an HS256 token signed with the shared
// secret whose role claim is "admin".
type JWTGate struct {
	secret []byte
	issuer string
}

// NewJWTGate creates a JWTGate. When issuer is non-empty the token's iss
// claim must match it.
func NewJWTGate(secret, issuer string) (*JWTGate, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTGate{secret: []byte(secret), issuer: issuer}, nil
}

// IsAdmin reports whether the request carries a valid admin token. Invalid,
// expired or non-admin tokens are a plain "no", never an error.
func (g *JWTGate) IsAdmin(r *http.Request) (bool, error) {
	raw := credential(r)
	if raw == "" {
		return false, nil
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		zap.S().Debugw("rejected admin jwt", "path", r.URL.Path, "error", err)
		return false, nil
	}

	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		zap.S().Debugw("rejected admin jwt without expiry", "path", r.URL.Path)
		return false, nil
	}
	if g.issuer != "" && !claims.VerifyIssuer(g.issuer, true) {
		return false, nil
	}
	return claims.Role == RoleAdmin, nil
}

// Sign issues an admin token valid for ttl. It is used by operators to mint
// credentials for the CLI and by tests.
func (g *JWTGate) Sign(subject string, ttl time.Duration) (string, error) {
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			Issuer:    g.issuer,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
		Role: RoleAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}
