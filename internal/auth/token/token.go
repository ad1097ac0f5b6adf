// Package token issues and verifies the HS256 session tokens shared by the
// auth service and the auth middleware.
package token

import (
	"errors"
	"fmt"
	"time"

	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

type Claims struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employee_id,omitempty"`
	Kind       Kind   `json:"typ"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *Issuer) TTL(kind Kind) time.Duration {
	if kind == Refresh {
		return i.refreshTTL
	}
	return i.accessTTL
}

func (i *Issuer) Issue(p domain.Principal, kind Kind) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:     p.UserID,
		Username:   p.Username,
		Role:       string(p.Role),
		EmployeeID: p.EmployeeID,
		Kind:       kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", p.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL(kind))),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}

// Parse verifies signature, expiry and token kind and returns the caller.
func (i *Issuer) Parse(raw string, kind Kind) (domain.Principal, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, autherrors.ErrTokenExpired
		}
		return domain.Principal{}, autherrors.ErrInvalidToken
	}
	if !tok.Valid || claims.Kind != kind || claims.UserID == 0 {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	return domain.Principal{
		UserID:     claims.UserID,
		Username:   claims.Username,
		Role:       role,
		EmployeeID: claims.EmployeeID,
	}, nil
}
