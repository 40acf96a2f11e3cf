// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIDLocal = "user_id"

var errInvalidSubject = errors.New("token carries no user id")

// Authenticator verifies HS256 bearer tokens issued by the identity provider.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// ParseToken returns the caller id from a raw token. The "user_id" claim wins
// over the standard "sub" claim.
func (a *Authenticator) ParseToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errInvalidSubject
	}

	raw, _ := claims["user_id"].(string)
	if raw == "" {
		raw, _ = claims["sub"].(string)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidSubject
	}
	return id, nil
}

func bearerToken(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(authHeader[7:]), true
}

// JwtMiddleware rejects requests without a valid token.
func (a *Authenticator) JwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr, ok := bearerToken(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	userId, err := a.ParseToken(tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	ctx.Locals(userIDLocal, userId)
	return ctx.Next()
}

// OptionalJwtMiddleware sets the caller id when a valid token is present and
// otherwise lets the request through anonymously.
func (a *Authenticator) OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	if tokenStr, ok := bearerToken(ctx); ok {
		if userId, err := a.ParseToken(tokenStr); err == nil {
			ctx.Locals(userIDLocal, userId)
		}
	}
	return ctx.Next()
}

// UserID returns the authenticated caller, if any.
func UserID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := ctx.Locals(userIDLocal).(uuid.UUID)
	return id, ok
}

// OptionalUserID is UserID shaped for services that accept anonymous callers.
func OptionalUserID(ctx *fiber.Ctx) *uuid.UUID {
	if id, ok := UserID(ctx); ok {
		return &id
	}
	return nil
}
