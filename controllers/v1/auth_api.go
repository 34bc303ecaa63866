package apiv1

import (
	"carelink-backend/controllers"
	"carelink-backend/lib/auth"
	apimodels "carelink-backend/models/api"
	authapimodels "carelink-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("register", controller.register)
		router.Post("login", controller.login)
		router.Get("verify-email", controller.verifyEmail)
	})
}

// @Summary Register a new user
// @Tags Auth
// @Description Register a caregiver or client account and send a verification mail
// @Param   request	body	authapimodels.RegisterRequest	true	"registration data"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/register [post]
func (c *authApiController) register(ctx *fiber.Ctx) error {
	request := authapimodels.RegisterRequest{}
	if err := c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := request.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := auth.Instance.Register(request); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Log in
// @Tags Auth
// @Description Exchange credentials for access and refresh tokens
// @Param   request	body	authapimodels.LoginRequest	true	"credentials"
// @Success 200 {object} apimodels.Response{data=authapimodels.TokenResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	request := authapimodels.LoginRequest{}
	if err := c.BodyParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := request.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	tokens, err := auth.Instance.Login(request)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(tokens))
}

// @Summary Verify email
// @Tags Auth
// @Description Apply an emailed verification code
// @Param   code	query	string	true	"verification code"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/auth/verify-email [get]
func (c *authApiController) verifyEmail(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("verification code is not specified"))
	}
	if err := auth.Instance.VerifyEmail(code); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
