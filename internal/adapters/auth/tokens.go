package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hotel_booking/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the access-token payload. Subject carries the user id.
type Claims struct {
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func (c Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

// Tokens issues and verifies HS256 access tokens. An optional cache acts as
// a denylist of revoked token ids.
type Tokens struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	revoked  domain.Cache
	now      func() time.Time
}

func NewTokens(secret, issuer, audience string, ttl time.Duration, revoked domain.Cache) *Tokens {
	return &Tokens{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		revoked:  revoked,
		now:      time.Now,
	}
}

func (t *Tokens) Issue(u domain.User) (string, time.Time, error) {
	now := t.now().UTC()
	exp := now.Add(t.ttl)
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses raw and checks signature, expiry, issuer, audience and the denylist.
func (t *Tokens) Verify(ctx context.Context, raw string) (Claims, error) {
	var c Claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if t.revoked != nil && c.ID != "" {
		var gone bool
		if ok, _ := t.revoked.Get(ctx, revokedKey(c.ID), &gone); ok && gone {
			return Claims{}, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
	}
	return c, nil
}

// Revoke denylists the token until its own expiry. Without a cache it is a no-op.
func (t *Tokens) Revoke(ctx context.Context, c Claims) error {
	if t.revoked == nil || c.ID == "" || c.ExpiresAt == nil {
		return nil
	}
	left := c.ExpiresAt.Sub(t.now())
	if left <= 0 {
		return nil
	}
	return t.revoked.Set(ctx, revokedKey(c.ID), true, int(left.Seconds())+1)
}

func revokedKey(jti string) string { return "revoked:" + jti }
