package handlers

import (
	"errors"

	"citalink.app/configs/configslog"
	"citalink.app/pkg/queryparams"
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// parseIDParam reads a UUID path parameter. A malformed value is an
// ErrInvalidID, distinct from a well-formed id that resolves to nothing.
func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, services.ErrInvalidID
	}
	return id, nil
}

// parseIDField parses a UUID carried in a request body.
func parseIDField(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, services.ErrInvalidID
	}
	return id, nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrSelfReference),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPasswordTooShort):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrUserSuspended):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUserEntityNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrContactNotFound),
		errors.Is(err, services.ErrFeedbackNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrProfileVisitNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps a service error onto an HTTP status. Unexpected errors
// are logged and masked behind a generic message.
func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		configslog.Log.Error("Unhandled service error",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err),
		)
		return c.Status(status).JSON(fiber.Map{"error": "error interno del servidor"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// respondDeletion always answers 200: deleting an already-deleted record is
// a successful no-op, not a conflict.
func respondDeletion(c *fiber.Ctx, transitioned bool) error {
	message := "ya ha sido eliminado previamente"
	if transitioned {
		message = "eliminado con éxito"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func listParamsFromQuery(c *fiber.Ctx) queryparams.ListParams {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.SLog.Warnw("Invalid list query, falling back to defaults", "error", err)
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()
	return params
}
