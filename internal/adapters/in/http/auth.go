package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	actorKey = "actor"

	// TokenCookie is read when no Authorization header is sent.
	TokenCookie = "token"
)

// Claims is the token body. The subject is the actor id; older tokens carry
// it as "id" instead.
type Claims struct {
	LegacyID string `json:"id,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for actor. It serves local tooling and tests;
// production tokens come from the identity provider.
func IssueToken(secret []byte, actor identity.Actor, ttl time.Duration, now time.Time) (string, error) {
	if err := actor.Validate(); err != nil {
		return "", err
	}

	claims := Claims{
		Role: actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Authenticate resolves the caller from a bearer token and stores the
// identity.Actor on the echo context. Missing or bad tokens fail with 401.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return identity.ErrUnauthenticated
			}

			claims := &Claims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				return identity.ErrUnauthenticated
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return identity.ErrUnauthenticated
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireRole admits only actors holding one of roles.
func RequireRole(roles ...identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := actorOf(c).Require(roles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func actorOf(c echo.Context) identity.Actor {
	actor, _ := c.Get(actorKey).(identity.Actor)
	return actor
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func actorFromClaims(claims *Claims) (identity.Actor, error) {
	subject := claims.Subject
	if subject == "" {
		subject = claims.LegacyID
	}
	if subject == "" {
		return identity.Actor{}, errors.New("token has no subject")
	}

	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return identity.Actor{}, fmt.Errorf("token subject: %w", err)
	}

	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return identity.Actor{}, err
	}

	return identity.NewActor(id, role)
}
