package controller

import (
	"notehub-be/internal/dto"
	"notehub-be/internal/pkg/logger"
	"notehub-be/internal/pkg/serverutils"
	"notehub-be/internal/service"
	"notehub-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
}

type recommendationController struct {
	recommendationService service.IRecommendationService
	auth                  *serverutils.Authenticator
	logger                logger.ILogger
}

func NewRecommendationController(
	recommendationService service.IRecommendationService,
	auth *serverutils.Authenticator,
	logger logger.ILogger,
) IRecommendationController {
	return &recommendationController{
		recommendationService: recommendationService,
		auth:                  auth,
		logger:                logger,
	}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommendation/v1")
	h.Use(c.auth.OptionalJwtMiddleware)
	h.Post("", c.Recommend)
}

// Recommend answers with {recommendations} or {error} rather than the
// standard envelope, so it writes its own error responses.
func (c *recommendationController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendNotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.fail(ctx, apperror.BadRequest("Invalid request body"))
	}

	res, err := c.recommendationService.Recommend(ctx.UserContext(), serverutils.OptionalUserID(ctx), &req)
	if err != nil {
		return c.fail(ctx, err)
	}

	return ctx.JSON(res)
}

func (c *recommendationController) fail(ctx *fiber.Ctx, err error) error {
	code := apperror.StatusOf(err)
	if code >= fiber.StatusInternalServerError {
		c.logger.Error("RECOMMEND", "Recommendation failed", map[string]interface{}{
			"error": err,
		})
	}
	return ctx.Status(code).JSON(dto.RecommendationErrorResponse{Error: apperror.MessageOf(err)})
}
