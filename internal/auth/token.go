package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"task-manager/pkg/apperr"
)

const issuer = "task-manager"

type claims struct {
	UID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a Tokens signing with secret. Issued tokens expire
// after ttl.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for p. The subject is the email, the uid claim the
// user id.
func (t *Tokens) Issue(p Principal) (string, error) {
	now := t.now()
	c := claims{
		UID: p.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Issuer:    issuer,
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify parses token and returns its principal. Any failure is an
// unauthorized error.
func (t *Tokens) Verify(token string) (Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Principal{}, apperr.Wrap(apperr.KindUnauthorized, err, "invalid token")
	}
	if c.Subject == "" || c.UID == 0 {
		return Principal{}, apperr.Wrap(apperr.KindUnauthorized, errors.New("missing subject"), "invalid token")
	}
	return Principal{UserID: c.UID, Email: c.Subject}, nil
}

