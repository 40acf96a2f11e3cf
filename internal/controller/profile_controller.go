package controller

import (
	"notehub-be/internal/dto"
	"notehub-be/internal/pkg/serverutils"
	"notehub-be/internal/service"
	"notehub-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	GetMe(ctx *fiber.Ctx) error
	UpdateMe(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Notes(ctx *fiber.Ctx) error
	Schools(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
	noteService    service.INoteService
	auth           *serverutils.Authenticator
}

func NewProfileController(
	profileService service.IProfileService,
	noteService service.INoteService,
	auth *serverutils.Authenticator,
) IProfileController {
	return &profileController{
		profileService: profileService,
		noteService:    noteService,
		auth:           auth,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Get("me", c.auth.JwtMiddleware, c.GetMe)
	h.Put("me", c.auth.JwtMiddleware, c.UpdateMe)
	h.Get(":id", c.Get)
	h.Get(":id/notes", c.Notes)

	r.Get("/school/v1", c.Schools)
}

func (c *profileController) GetMe(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return err
	}

	res, err := c.profileService.GetMe(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *profileController) UpdateMe(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.UpdateMe(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}

func (c *profileController) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.profileService.Get(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *profileController) Notes(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.noteService.ListByOwner(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list profile notes", res))
}

func (c *profileController) Schools(ctx *fiber.Ctx) error {
	res, err := c.profileService.ListSchools(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list schools", res))
}
