package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/owner"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = fiber.NewError(fiber.StatusBadRequest, "Invalid request body")

// fail writes the response for a known service error. Anything unknown is
// returned to Fiber so ErrorHandler logs and reports it.
func fail(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ve):
		return errorJSON(c, fiber.StatusBadRequest, ve.Message)
	case errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError:
		return errorJSON(c, fe.Code, fe.Message)
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrDuplicateProjectID),
		errors.Is(err, services.ErrDuplicateSkillID):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrSkillNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	}
	return err
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}

// ErrorHandler is the app-wide Fiber error handler. Server errors are
// logged, sent to Sentry and hidden behind a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		message = "Internal server error"
		attrs := []any{
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		}
		if userID, uerr := owner.GetUserID(c); uerr == nil {
			attrs = append(attrs, "user_id", userID.String())
		}
		slog.Error("unhandled server error", attrs...)

		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return errorJSON(c, code, message)
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
