package apiv1

import (
	"carelink-backend/controllers"
	"carelink-backend/lib/applications"
	pdfexport "carelink-backend/lib/export/pdf"
	xlsexport "carelink-backend/lib/export/xls"
	filestorage "carelink-backend/lib/file-storage"
	apimodels "carelink-backend/models/api"
	applicationapimodels "carelink-backend/models/api/application"
	filesapimodels "carelink-backend/models/api/files"

	"github.com/gofiber/fiber/v2"
)

type adminApplicationApiController struct {
	controllers.BaseAPIController
}

func InitAdminApplicationApiRouters(app *fiber.App) {
	controller := adminApplicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Get("doc/:id", controller.getDoc)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Get("docs", controller.listDocs)
			idRouter.Get("summary", controller.summary)
			idRouter.Put("status", controller.changeStatus)
			idRouter.Put("note", controller.setNote)
			idRouter.Put("override", controller.override)
		})
	})
}

// @Summary List applications
// @Tags Review
// @Description Paged application list with status/stage/search filters
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   request	body	applicationapimodels.ListRequest	true	"filter and paging"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ReviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/applications/list [post]
func (c *adminApplicationApiController) list(ctx *fiber.Ctx) error {
	request := applicationapimodels.ListRequest{}
	if err := c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := request.GetPage()
	list, rowCount, err := applications.Instance.List(request.Filter, page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Get application
// @Tags Review
// @Description Full application with candidate data and review notes
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application id"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ReviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/applications/{id} [get]
func (c *adminApplicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := applications.Instance.GetForReview(id)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Change application status
// @Tags Review
// @Description Move the application one step along the pipeline, or reject it
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application id"
// @Param   request	body	applicationapimodels.StatusChangeRequest	true	"target status"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/applications/{id}/status [put]
func (c *adminApplicationApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	request := applicationapimodels.StatusChangeRequest{}
	if err = c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = applications.Instance.ChangeStatus(id, request.Status); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Set review note
// @Tags Review
// @Description Attach an admin-only note to the application
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application id"
// @Param   request	body	applicationapimodels.NoteRequest	true	"note text"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/applications/{id}/note [put]
func (c *adminApplicationApiController) setNote(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	request := applicationapimodels.NoteRequest{}
	if err = c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = applications.Instance.SetNote(id, request.Note); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Override application state
// @Tags Review
// @Description Administrative reset of status and step, the only path allowed to move them backwards
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application id"
// @Param   request	body	applicationapimodels.OverrideRequest	true	"target state"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/applications/{id}/override [put]
func (c *adminApplicationApiController) override(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	request := applicationapimodels.OverrideRequest{}
	if err = c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = applications.Instance.Override(id, request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Export applications
// @Tags Review
// @Description Download the filtered application list as XLSX
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   request	body	applicationapimodels.ListRequest	true	"filter"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/applications/export [post]
func (c *adminApplicationApiController) export(ctx *fiber.Ctx) error {
	request := applicationapimodels.ListRequest{}
	if err := c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	recs, err := applications.Instance.ListRecords(request.Filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := xlsexport.Instance.ExportApplicationList(recs)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="applications.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// @Summary List application documents
// @Tags Review
// @Description Documents attached to the application
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application id"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/applications/{id}/docs [get]
func (c *adminApplicationApiController) listDocs(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := filestorage.Instance.ListByApplication(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	result := make([]filesapimodels.FileView, 0, len(list))
	for _, rec := range list {
		result = append(result, filesapimodels.Convert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Download application document
// @Tags Review
// @Description Download any stored application document by its file id
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"file id"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/applications/doc/{id} [get]
func (c *adminApplicationApiController) getDoc(ctx *fiber.Ctx) error {
	fileID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, body, err := filestorage.Instance.GetFile(ctx.UserContext(), fileID)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.Name+`"`)
	return ctx.Send(body)
}

// @Summary Application summary PDF
// @Tags Review
// @Description One-page interview printout for the application
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application id"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/applications/{id}/summary [get]
func (c *adminApplicationApiController) summary(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applications.Instance.GetRecord(id)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, err := pdfexport.GenerateApplicationSummary(rec)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="application-summary.pdf"`)
	return ctx.Send(body)
}
