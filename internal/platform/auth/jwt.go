package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-schedule-service/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "delivery-scheduler"

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by tokens minted by the access-control layer.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService verifies (and, for local tooling, issues) HS256 tokens.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue mints a token for the given identity. Used by cmd/devtoken and tests.
func (s *TokenService) Issue(c domain.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: c.UserID,
		Role:   string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(c.UserID),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature, expiry and claims, and returns the caller identity.
func (s *TokenService) Verify(tokenString string) (domain.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Caller{}, ErrInvalidToken
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok || claims.UserID <= 0 {
		return domain.Caller{}, fmt.Errorf("%w: bad identity claims", ErrInvalidToken)
	}

	return domain.Caller{UserID: claims.UserID, Role: role}, nil
}

type callerKey struct{}

func WithCaller(ctx context.Context, c domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the identity attached by the auth middleware.
func CallerFrom(ctx context.Context) (domain.Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(domain.Caller)
	return c, ok
}
