// Package token implements the signed-token codec used for
// authentication. A Codec is constructed once at startup from explicit
// configuration; there is no package-level secret.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

// Config captures the settings the codec needs. Both fields are
// mandatory; NewCodec rejects a missing secret or non-positive TTL so a
// misconfigured process fails at startup rather than at the first request.
type Config struct {
	Secret string
	TTL    time.Duration
}

// Codec signs and verifies HS256 JWTs carrying an identity snapshot.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token: signing secret must not be empty")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive, got %s", cfg.TTL)
	}
	return &Codec{secret: []byte(cfg.Secret), ttl: cfg.TTL}, nil
}

type claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Sign encodes the identity plus an expiry into a signed token.
func (c *Codec) Sign(identity domain.Identity) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the identity that
// was signed. Malformed, tampered, and expired tokens all yield
// domain.ErrInvalidToken; callers cannot distinguish the cause.
func (c *Codec) Verify(raw string) (domain.Identity, error) {
	var cl claims
	t, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !t.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{ID: cl.UserID, Email: cl.Email, Role: cl.Role}, nil
}
