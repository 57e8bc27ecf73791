package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spaceqrpro/qrmenu-api/internal/config"
)

// ErrInvalidToken covers bad signature, wrong algorithm, malformed payload
// and expiry alike. Callers must not distinguish between those cases.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded token payload. The identity's email travels in the
// standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) Email() string {
	return c.Subject
}

// Maker issues and verifies HS256 access tokens. There is no revocation,
// expiry is the only invalidation path.
type Maker struct {
	secret []byte
}

func NewMaker(secret string) *Maker {
	return &Maker{secret: []byte(secret)}
}

func (m *Maker) Issue(email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = config.DefaultTokenTTL
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *Maker) Verify(tokenString string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Exactly one accepted algorithm, everything else is rejected.
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
