package handlers

import (
	"time"

	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler exposes the appointment endpoints.
type AppointmentHandler struct {
	service services.IAppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(service services.IAppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	ClientID            string    `json:"clientId"`
	ProfID              string    `json:"profId"`
	Status              string    `json:"status"`
	Office              string    `json:"office"`
	AppointmentDateTime time.Time `json:"appointmentDateTime"`
}

type updateAppointmentRequest struct {
	ActorID             string     `json:"actorId"`
	Status              *string    `json:"status"`
	Office              *string    `json:"office"`
	AppointmentDateTime *time.Time `json:"appointmentDateTime"`
}

// Create books an appointment between a client and a professional.
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req createAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	clientID, err := parseIDField(req.ClientID)
	if err != nil {
		return respondError(c, err)
	}
	profID, err := parseIDField(req.ProfID)
	if err != nil {
		return respondError(c, err)
	}
	appointment, err := h.service.CreateAppointment(c.UserContext(), services.CreateAppointmentInput{
		ClientID:            clientID,
		ProfID:              profID,
		Status:              req.Status,
		Office:              req.Office,
		AppointmentDateTime: req.AppointmentDateTime,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// Update applies a partial update attributed to the actor in the body.
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	actorID, err := parseIDField(req.ActorID)
	if err != nil {
		return respondError(c, err)
	}
	appointment, err := h.service.UpdateAppointment(c.UserContext(), id, actorID, services.AppointmentPatch{
		Status:              req.Status,
		Office:              req.Office,
		AppointmentDateTime: req.AppointmentDateTime,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointment)
}

// Delete soft-deletes an appointment.
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	deletedBy, err := parseIDField(req.DeletedBy)
	if err != nil {
		return respondError(c, err)
	}
	transitioned, err := h.service.DeleteAppointment(c.UserContext(), id, deletedBy)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, transitioned)
}

// List returns active appointments with pagination.
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	result, err := h.service.GetAllAppointments(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListByClient returns a client's active appointments.
func (h *AppointmentHandler) ListByClient(c *fiber.Ctx) error {
	clientID, err := parseIDParam(c, "clientId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetAppointmentsByClientID(c.UserContext(), clientID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListByProf returns a professional's active appointments.
func (h *AppointmentHandler) ListByProf(c *fiber.Ctx) error {
	profID, err := parseIDParam(c, "profId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetAppointmentsByProfID(c.UserContext(), profID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
