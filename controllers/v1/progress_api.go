package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/lib/progress"
	apimodels "recruiting-backend/models/api"
	progressapimodels "recruiting-backend/models/api/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type progressApiController struct {
	controllers.BaseAPIController
}

func InitProgressApiRouters(app *fiber.App) {
	controller := progressApiController{}
	app.Route("progress", func(router fiber.Router) {
		router.Post("bulk_advance", controller.bulkAdvance)
		router.Post("bulk_reject", controller.bulkReject)
		router.Route(":pipelineID/:id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("advance", controller.advance)
			idRouter.Put("reject", controller.reject)
		})
	})
}

func (c *progressApiController) getIDs(ctx *fiber.Ctx) (pipelineID, applicationID string, err error) {
	pipelineID = ctx.Params("pipelineID")
	applicationID = ctx.Params("id")
	if pipelineID == "" || applicationID == "" {
		return "", "", errors.New("не указаны идентификаторы воронки и заявки")
	}
	return pipelineID, applicationID, nil
}

// @Summary Прогресс заявки в воронке
// @Tags Прогресс
// @Param   pipelineID	path	string	true	"ID воронки"
// @Param   id        	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/progress/{pipelineID}/{id} [get]
func (c *progressApiController) get(ctx *fiber.Ctx) error {
	pipelineID, applicationID, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := progress.Instance.Get(applicationID, pipelineID)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Перевести заявку на следующий этап
// @Tags Прогресс
// @Description Переход закрыт, пока на текущем этапе есть незавершённые проверки
// @Param   pipelineID	path	string	true	"ID воронки"
// @Param   id        	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/progress/{pipelineID}/{id}/advance [put]
func (c *progressApiController) advance(ctx *fiber.Ctx) error {
	pipelineID, applicationID, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := progress.Instance.Advance(ctx.UserContext(), applicationID, pipelineID)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Отклонить заявку
// @Tags Прогресс
// @Description Состояние меняется только после успешного уведомления кандидата
// @Param   pipelineID	path	string	true	"ID воронки"
// @Param   id        	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/progress/{pipelineID}/{id}/reject [put]
func (c *progressApiController) reject(ctx *fiber.Ctx) error {
	pipelineID, applicationID, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := progress.Instance.Reject(ctx.UserContext(), applicationID, pipelineID)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Массовый перевод заявок
// @Tags Прогресс
// @Description Заявки обрабатываются независимо, результат по каждой заявке отдельно
// @Param   body	body	progressapimodels.BulkRequest	true	"заявки и воронка"
// @Success 200 {object} apimodels.Response
// @router /api/v1/progress/bulk_advance [post]
func (c *progressApiController) bulkAdvance(ctx *fiber.Ctx) error {
	data := progressapimodels.BulkRequest{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	results := progress.Instance.BulkAdvance(ctx.UserContext(), data.ApplicationIDs, data.PipelineID)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(results))
}

// @Summary Массовое отклонение заявок
// @Tags Прогресс
// @Description Заявки обрабатываются независимо, результат по каждой заявке отдельно
// @Param   body	body	progressapimodels.BulkRequest	true	"заявки и воронка"
// @Success 200 {object} apimodels.Response
// @router /api/v1/progress/bulk_reject [post]
func (c *progressApiController) bulkReject(ctx *fiber.Ctx) error {
	data := progressapimodels.BulkRequest{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	results := progress.Instance.BulkReject(ctx.UserContext(), data.ApplicationIDs, data.PipelineID)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(results))
}
