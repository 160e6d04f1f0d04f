package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies identity tokens. It is stateless: given the
// same secret, Sign and Verify are pure functions of their input.
type TokenCodec struct {
	secret []byte
}

// claims is the token payload: just the user identifier. Tokens carry no
// expiry; see DESIGN.md for the trade-off.
type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// NewTokenCodec creates a codec from the process-wide secret. An empty
// secret is refused so a misconfigured deployment cannot mint tokens that
// anyone can forge.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Sign produces a signed token encoding userID.
func (c *TokenCodec) Sign(userID string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{UserID: userID})
	return t.SignedString(c.secret)
}

// Verify checks the token's signature and returns the encoded user ID.
// Tampered, malformed, or wrong-secret tokens return an error, never panic.
func (c *TokenCodec) Verify(token string) (string, error) {
	var cl claims
	t, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !t.Valid || cl.UserID == "" {
		return "", errors.New("invalid token")
	}
	return cl.UserID, nil
}
