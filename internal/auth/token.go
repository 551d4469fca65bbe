// Package auth implements password hashing and signed session tokens.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hassansabag81/TecRoomV1/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Claims are the token payload asserted about an account. JSON field names
// match what the UI stores from the login response.
type Claims struct {
	AccountID int64  `json:"usuarioId"`
	Username  string `json:"username"`
	UserType  string `json:"userType"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs session tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewIssuer(secret []byte, ttl time.Duration, clock clockwork.Clock) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, clock: clock}
}

// Issue signs an HS256 token embedding the account's identity and role.
func (i *Issuer) Issue(account *domain.Account) (string, error) {
	now := i.clock.Now()
	claims := &Claims{
		AccountID: account.ID,
		Username:  account.Username,
		UserType:  strings.ToLower(string(account.Role)),
		Name:      account.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verifier validates and decodes bearer tokens. It is pure computation:
// signature plus embedded expiry decide validity, with no database lookup.
type Verifier struct {
	secret []byte
	clock  clockwork.Clock
}

func NewVerifier(secret []byte, clock clockwork.Clock) *Verifier {
	return &Verifier{secret: secret, clock: clock}
}

// Verify checks signature and expiry and returns the embedded claims.
// Malformed, expired, or foreign-algorithm tokens all fail with
// domain.ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
