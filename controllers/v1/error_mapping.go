package apiv1

import (
	"recruiting-backend/models"
	apimodels "recruiting-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// sendError сопоставляет бизнес-ошибки с HTTP кодами. Всё, что не входит
// в таксономию, считается внутренней ошибкой.
func sendError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrStageNotFound),
		errors.Is(err, models.ErrPipelineNotFound),
		errors.Is(err, models.ErrApplicationNotFound),
		errors.Is(err, models.ErrReviewNotFound),
		errors.Is(err, models.ErrReviewerNotFound),
		errors.Is(err, models.ErrProgressNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrAlreadyTerminal),
		errors.Is(err, models.ErrReviewsIncomplete):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrNoReviewersConfigured),
		errors.Is(err, models.ErrNoAutoAssignCandidate):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrNotificationFailed):
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(err.Error()))
	}
	log.WithError(err).Error("внутренняя ошибка обработки запроса")
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("внутренняя ошибка"))
}
