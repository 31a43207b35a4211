package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/lib/assignment"
	"recruiting-backend/lib/review"
	apimodels "recruiting-backend/models/api"
	reviewapimodels "recruiting-backend/models/api/review"

	"github.com/gofiber/fiber/v2"
)

type reviewApiController struct {
	controllers.BaseAPIController
}

func InitReviewApiRouters(app *fiber.App) {
	controller := reviewApiController{}
	app.Route("review", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Get("status", controller.status)
			idRouter.Put("fields", controller.saveFields)
			idRouter.Put("assign", controller.assign)
			idRouter.Put("reassign", controller.reassign)
		})
	})
}

// @Summary Создать проверку на этапе
// @Tags Проверка
// @Description Создать запись проверки без назначения проверяющего
// @Param   body	body	reviewapimodels.CreateRequest	true	"этап и заявка"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/review [post]
func (c *reviewApiController) create(ctx *fiber.Ctx) error {
	data := reviewapimodels.CreateRequest{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := review.Instance.CreateForStage(data.StageID, data.ApplicationID)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Получить проверку
// @Tags Проверка
// @Param   id	path	string	true	"ID проверки"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/review/{id} [get]
func (c *reviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := review.Instance.GetByID(id)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Статус проверки
// @Tags Проверка
// @Description Статус выводится из заполненных полей и схемы этапа
// @Param   id	path	string	true	"ID проверки"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/review/{id}/status [get]
func (c *reviewApiController) status(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	status, err := review.Instance.StatusByID(id)
	if err != nil {
		return sendError(ctx, err)
	}
	view := reviewapimodels.ReviewStatusView{
		ID:     id,
		Status: status,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Сохранить поля анкеты
// @Tags Проверка
// @Param   id  	path	string	true	"ID проверки"
// @Param   body	body	reviewapimodels.SaveFieldsRequest	true	"значения полей"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/review/{id}/fields [put]
func (c *reviewApiController) saveFields(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := reviewapimodels.SaveFieldsRequest{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = review.Instance.SaveFields(id, data.Fields)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Назначить проверяющего
// @Tags Проверка
// @Description Явное назначение по почте либо автоподбор с балансировкой
// @Param   id  	path	string	true	"ID проверки"
// @Param   body	body	reviewapimodels.AssignRequest	true	"почта проверяющего (пусто - автоподбор)"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/review/{id}/assign [put]
func (c *reviewApiController) assign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := reviewapimodels.AssignRequest{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := assignment.Instance.Assign(ctx.UserContext(), id, data.ReviewerEmail)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Переназначить проверяющего
// @Tags Проверка
// @Description Текущий проверяющий попадает в блок-лист заявки, подбирается новый
// @Param   id	path	string	true	"ID проверки"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/review/{id}/reassign [put]
func (c *reviewApiController) reassign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := assignment.Instance.Reassign(ctx.UserContext(), id)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
