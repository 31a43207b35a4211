package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/db"
	reviewerstore "recruiting-backend/lib/reviewer/store"
	apimodels "recruiting-backend/models/api"
	reviewerapimodels "recruiting-backend/models/api/reviewer"
	dbmodels "recruiting-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type reviewerApiController struct {
	controllers.BaseAPIController
}

func InitReviewerApiRouters(app *fiber.App) {
	controller := reviewerApiController{}
	app.Route("reviewer", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("stage/:stageID", controller.listByStage)
	})
}

// @Summary Добавить проверяющего
// @Tags Проверяющий
// @Description Завести проверяющего и закрепить его за этапами
// @Param   body	body	reviewerapimodels.CreateRequest	true	"данные проверяющего"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviewer [post]
func (c *reviewerApiController) create(ctx *fiber.Ctx) error {
	data := reviewerapimodels.CreateRequest{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := data.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	store := reviewerstore.NewInstance(db.DB)
	existing, err := store.GetByEmail(data.Email)
	if err != nil {
		return sendError(ctx, err)
	}
	if existing != nil {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError("проверяющий с таким email уже существует"))
	}
	_, err = store.Create(dbmodels.Reviewer{
		Email:                   data.Email,
		FirstName:               data.FirstName,
		LastName:                data.LastName,
		IsActive:                true,
		AssignedStageIDs:        data.AssignedStageIDs,
		FirstYearsOnlyScreen:    data.FirstYearsOnlyScreen,
		FirstYearsOnlyInterview: data.FirstYearsOnlyInterview,
		IsSoloInterviewer:       data.IsSoloInterviewer,
	})
	if err != nil {
		return sendError(ctx, err)
	}
	rec, err := store.GetByEmail(data.Email)
	if err != nil {
		return sendError(ctx, err)
	}
	if rec == nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("проверяющий не сохранился"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(reviewerapimodels.Convert(*rec)))
}

// @Summary Проверяющие этапа
// @Tags Проверяющий
// @Description Активные проверяющие, закреплённые за этапом
// @Param   stageID	path	string	true	"ID этапа"
// @Success 200 {object} apimodels.Response
// @router /api/v1/reviewer/stage/{stageID} [get]
func (c *reviewerApiController) listByStage(ctx *fiber.Ctx) error {
	stageID := ctx.Params("stageID")
	if stageID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан ID этапа"))
	}
	list, err := reviewerstore.NewInstance(db.DB).ListByStage(stageID)
	if err != nil {
		return sendError(ctx, err)
	}
	result := make([]reviewerapimodels.ReviewerView, 0, len(list))
	for _, rec := range list {
		result = append(result, reviewerapimodels.Convert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
