package webapi

import (
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
)

// LoginRequest carries the credentials for a login attempt.
type LoginRequest struct {
	AccountNumber int64  `json:"account_number" validate:"required,gt=0"`
	Password      string `json:"password" validate:"required"`
}

// ChangePasswordRequest carries a password-change submission.
type ChangePasswordRequest struct {
	AccountNumber   int64  `json:"account_number" validate:"required,gt=0"`
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// AuthRoutes registers the login and change-password endpoints.
func AuthRoutes(app *fiber.App, authSvc *auth.Service) {
	app.Post("/login", Login(authSvc))
	app.Post("/password", ChangePassword(authSvc))
}

// Login authenticates an account and returns a session token.
// @Summary Account login
// @Description Authenticate with account number and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /login [post]
func Login(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Error on login request", err.Error())
		}
		sess, err := authSvc.Login(c.UserContext(), input.AccountNumber, input.Password)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Login failed", err.Error())
		}
		token, err := authSvc.GenerateToken(sess)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success login",
			Data: fiber.Map{
				"token":   token,
				"account": ToAccountDTO(sess.Account),
			},
		})
	}
}

// ChangePassword verifies the current password and stores a new hash.
// @Summary Change account password
// @Description Verify the current password and set a new one
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Password change"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /password [post]
func ChangePassword(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ChangePasswordRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Error on change password request", err.Error())
		}
		err = authSvc.ChangePassword(
			c.UserContext(),
			input.AccountNumber,
			input.CurrentPassword,
			input.NewPassword,
			input.ConfirmPassword,
		)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Change password failed", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Password changed successfully"})
	}
}
