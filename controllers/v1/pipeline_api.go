package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/db"
	pipelinestore "recruiting-backend/lib/pipeline/store"
	apimodels "recruiting-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type pipelineApiController struct {
	controllers.BaseAPIController
}

func InitPipelineApiRouters(app *fiber.App) {
	controller := pipelineApiController{}
	app.Route("pipeline", func(router fiber.Router) {
		router.Get(":id/stages", controller.listStages)
	})
}

// @Summary Этапы воронки
// @Tags Воронка
// @Param   id	path	string	true	"ID воронки"
// @Success 200 {object} apimodels.Response
// @router /api/v1/pipeline/{id}/stages [get]
func (c *pipelineApiController) listStages(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := pipelinestore.NewInstance(db.DB).ListStages(id)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
