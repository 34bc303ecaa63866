package apiv1

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"carelink-backend/controllers"
	"carelink-backend/lib/applications"
	filestorage "carelink-backend/lib/file-storage"
	"carelink-backend/middleware"
	apimodels "carelink-backend/models/api"
	applicationapimodels "carelink-backend/models/api/application"
	dbmodels "carelink-backend/models/db"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

// maxSubmitBodySize caps a single step submission, video interview included.
const maxSubmitBodySize = 100 * 1024 * 1024

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Post("submit", middleware.WithBodyLimit(maxSubmitBodySize), controller.submit)
		router.Get("my", controller.my)
		router.Get("doc/:id", controller.getDoc)
	})
}

// @Summary Submit an application step
// @Tags Application
// @Description Create or update the caller's application with one step's fields and optional documents
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   step	formData	int	true	"step number"
// @Param   cv	formData	file	false	"CV document"
// @Param   video	formData	file	false	"video interview"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/submit [post]
func (c *applicationApiController) submit(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	request, files, err := c.parseSubmit(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := applications.Instance.Submit(ctx.UserContext(), userID, request, files)
	if err != nil {
		return ctx.Status(submitErrorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Get my application
// @Tags Application
// @Description Current user's application, or empty data when none was started
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/my [get]
func (c *applicationApiController) my(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	view, err := applications.Instance.FetchMine(userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	// No application yet is a defined result, not an error.
	if view == nil {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Download own document
// @Tags Application
// @Description Download a document belonging to the caller's application
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"file id"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @router /api/v1/applications/doc/{id} [get]
func (c *applicationApiController) getDoc(ctx *fiber.Ctx) error {
	fileID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	mine, err := applications.Instance.FetchMine(userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	rec, body, err := filestorage.Instance.GetFile(ctx.UserContext(), fileID)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if mine == nil || rec.ApplicationID != mine.ID {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not permitted"))
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	return ctx.Send(body)
}

func submitErrorStatus(err error) int {
	var validationErr *applications.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest
	}
	var sequenceErr *applications.OutOfSequenceError
	if errors.As(err, &sequenceErr) {
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// parseSubmit accepts a JSON body (no files) or a multipart form carrying the
// step fields and documents.
func (c *applicationApiController) parseSubmit(ctx *fiber.Ctx) (applicationapimodels.SubmitRequest, []applications.FileAttachment, error) {
	request := applicationapimodels.SubmitRequest{}
	contentType := string(ctx.Request().Header.ContentType())
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if err := c.BodyParser(ctx, &request); err != nil {
			return request, nil, err
		}
		return request, nil, nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return request, nil, errors.New("multipart form could not be parsed")
	}
	step, err := strconv.Atoi(firstValue(form, "step"))
	if err != nil {
		return request, nil, errors.New("step number is missing or invalid")
	}
	request.Step = step
	request.Payload, err = parsePayload(form)
	if err != nil {
		return request, nil, err
	}
	files, err := parseAttachments(form)
	if err != nil {
		return request, nil, err
	}
	return request, files, nil
}

func parsePayload(form *multipart.Form) (applicationapimodels.StepPayload, error) {
	p := applicationapimodels.StepPayload{}
	if v, ok := formValue(form, "years_of_experience"); ok {
		years, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.New("years_of_experience is invalid")
		}
		p.YearsOfExperience = &years
	}
	if v, ok := formValue(form, "preferred_work_location"); ok {
		p.PreferredWorkLocation = &v
	}
	if v, ok := formValue(form, "available_weekends"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, errors.New("available_weekends is invalid")
		}
		p.AvailableWeekends = &b
	}
	if v, ok := formValue(form, "available_nights"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, errors.New("available_nights is invalid")
		}
		p.AvailableNights = &b
	}
	if values, ok := form.Value["specialties"]; ok {
		p.Specialties = values
	}
	if values, ok := form.Value["certifications"]; ok {
		p.Certifications = values
	}
	if v, ok := formValue(form, "cover_letter"); ok {
		p.CoverLetter = &v
	}
	if v, ok := formValue(form, "confirm"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, errors.New("confirm is invalid")
		}
		p.Confirm = &b
	}
	return p, nil
}

var formFileTypes = map[string]dbmodels.FileType{
	"cv":             dbmodels.ApplicationCV,
	"certifications": dbmodels.ApplicationCertification,
	"video":          dbmodels.ApplicationVideo,
}

func parseAttachments(form *multipart.Form) ([]applications.FileAttachment, error) {
	attachments := []applications.FileAttachment{}
	for field, fileType := range formFileTypes {
		for _, header := range form.File[field] {
			body, err := readFile(header)
			if err != nil {
				log.WithError(err).WithField("field", field).Error("attachment read failed")
				return nil, errors.Errorf("file %q could not be read", header.Filename)
			}
			attachments = append(attachments, applications.FileAttachment{
				Type:        fileType,
				Name:        header.Filename,
				ContentType: header.Header.Get(fiber.HeaderContentType),
				Body:        body,
			})
		}
	}
	return attachments, nil
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func firstValue(form *multipart.Form, key string) string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

func formValue(form *multipart.Form, key string) (string, bool) {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return values[0], true
	}
	return "", false
}
