package controller

import (
	"notehub-be/internal/dto"
	"notehub-be/internal/pkg/serverutils"
	"notehub-be/internal/service"
	"notehub-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Rate(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	auth        *serverutils.Authenticator
}

func NewNoteController(noteService service.INoteService, auth *serverutils.Authenticator) INoteController {
	return &noteController{
		noteService: noteService,
		auth:        auth,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Get("", c.List)
	h.Get("mine", c.auth.JwtMiddleware, c.Mine)
	h.Post("", c.auth.JwtMiddleware, c.Create)
	h.Get(":id", c.auth.OptionalJwtMiddleware, c.Show)
	h.Put(":id", c.auth.JwtMiddleware, c.Update)
	h.Delete(":id", c.auth.JwtMiddleware, c.Delete)
	h.Post(":id/rating", c.auth.JwtMiddleware, c.Rate)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	var req dto.ListNotesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Mine(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Mine(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list my notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), serverutils.OptionalUserID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return err
	}

	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return err
	}

	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *noteController) Rate(ctx *fiber.Ctx) error {
	userId, err := callerID(ctx)
	if err != nil {
		return err
	}

	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	req.NoteId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Rate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rate note", res))
}
