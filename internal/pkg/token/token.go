// Package token implements the signed identity assertion carried by the auth
// cookie. Tokens are stateless HS256 JWTs: any holder of a validly signed,
// unexpired token is treated as that user. There is no revocation before
// natural expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the request cookie carrying the identity assertion.
const CookieName = "token"

// DefaultTTL is the validity window stamped into every issued token.
const DefaultTTL = 24 * time.Hour

var (
	ErrNoSecret     = errors.New("token: signing secret not configured")
	ErrEmptyClaims  = errors.New("token: empty claims payload")
	ErrInvalidToken = errors.New("token: malformed token")
	ErrSignature    = errors.New("token: signature mismatch")
	ErrExpired      = errors.New("token: expired")
)

// Codec signs and verifies identity tokens. All failure modes come back as
// typed errors so callers can treat "no identity" uniformly.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls back
// to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source used for issuing and validating.
// Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue signs the given claims, stamping issued-at and expiry. The claims map
// must be non-empty.
func (c *Codec) Issue(claims map[string]any) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSecret
	}
	if len(claims) == 0 {
		return "", ErrEmptyClaims
	}

	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	now := c.now().UTC()
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(c.ttl).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims.
func (c *Codec) Verify(tokenString string) (map[string]any, error) {
	if len(c.secret) == 0 {
		return nil, ErrNoSecret
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))

	switch {
	case err == nil && tkn.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrSignature
	default:
		return nil, ErrInvalidToken
	}
}
