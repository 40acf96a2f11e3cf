package controller

import (
	"notehub-be/internal/pkg/serverutils"
	"notehub-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

// callerID is for routes behind JwtMiddleware, which always sets the id.
func callerID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, ok := serverutils.UserID(ctx)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("Missing token")
	}
	return id, nil
}
