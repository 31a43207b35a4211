package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/db"
	applicantstore "recruiting-backend/lib/applicant/store"
	"recruiting-backend/lib/progress"
	apimodels "recruiting-backend/models/api"
	applicantapimodels "recruiting-backend/models/api/applicant"
	dbmodels "recruiting-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type applicantApiController struct {
	controllers.BaseAPIController
}

func InitApplicantApiRouters(app *fiber.App) {
	controller := applicantApiController{}
	app.Route("applicant", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
		})
	})
}

// @Summary Подать заявку
// @Tags Кандидат
// @Description Создать заявку и завести её прогресс в воронке
// @Param   body	body	dbmodels.ApplicationCreateData	true	"данные заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applicant [post]
func (c *applicantApiController) create(ctx *fiber.Ctx) error {
	data := dbmodels.ApplicationCreateData{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := data.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	store := applicantstore.NewInstance(db.DB)
	id, err := store.Create(dbmodels.Application{
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		Phone:        data.Phone,
		Major:        data.Major,
		StartQuarter: data.StartQuarter,
		GradQuarter:  data.GradQuarter,
		ResumeLink:   data.ResumeLink,
	})
	if err != nil {
		return sendError(ctx, err)
	}
	if data.PipelineID != "" {
		_, err = progress.Instance.Start(id, data.PipelineID)
		if err != nil {
			return sendError(ctx, err)
		}
	}
	rec, err := store.GetByID(id)
	if err != nil {
		return sendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicantapimodels.Convert(*rec)))
}

// @Summary Получить заявку
// @Tags Кандидат
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/applicant/{id} [get]
func (c *applicantApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicantstore.NewInstance(db.DB).GetByID(id)
	if err != nil {
		return sendError(ctx, err)
	}
	if rec == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("заявка не найдена"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicantapimodels.Convert(*rec)))
}

// @Summary Список заявок
// @Tags Кандидат
// @Param   body	body	dbmodels.ApplicationFilter	true	"фильтр"
// @Success 200 {object} apimodels.Response
// @router /api/v1/applicant/list [post]
func (c *applicantApiController) list(ctx *fiber.Ctx) error {
	filter := dbmodels.ApplicationFilter{}
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := applicantstore.NewInstance(db.DB).List(filter)
	if err != nil {
		return sendError(ctx, err)
	}
	result := make([]applicantapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicantapimodels.Convert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
