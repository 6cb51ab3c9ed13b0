package handlers

import (
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileVisitHandler exposes the profile-visit endpoints.
type ProfileVisitHandler struct {
	service services.IProfileVisitService
}

// NewProfileVisitHandler creates a new ProfileVisitHandler.
func NewProfileVisitHandler(service services.IProfileVisitService) *ProfileVisitHandler {
	return &ProfileVisitHandler{service: service}
}

type createProfileVisitRequest struct {
	VisitorID string `json:"visitorId"`
	HostID    string `json:"hostId"`
}

// Create records a visit to a profile.
func (h *ProfileVisitHandler) Create(c *fiber.Ctx) error {
	var req createProfileVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	visitorID, err := parseIDField(req.VisitorID)
	if err != nil {
		return respondError(c, err)
	}
	hostID, err := parseIDField(req.HostID)
	if err != nil {
		return respondError(c, err)
	}
	visit, err := h.service.CreateProfileVisit(c.UserContext(), services.CreateProfileVisitInput{
		VisitorID: visitorID,
		HostID:    hostID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(visit)
}

// Delete soft-deletes a visit record.
func (h *ProfileVisitHandler) Delete(c *fiber.Ctx) error {
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
	transitioned, err := h.service.DeleteProfileVisit(c.UserContext(), id, deletedBy)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, transitioned)
}

// List returns active visit records with pagination.
func (h *ProfileVisitHandler) List(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	result, err := h.service.GetAllProfileVisits(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListByHost returns the visits a profile has received.
func (h *ProfileVisitHandler) ListByHost(c *fiber.Ctx) error {
	hostID, err := parseIDParam(c, "hostId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetProfileVisitsByHostID(c.UserContext(), hostID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListByVisitor returns the visits a user has made.
func (h *ProfileVisitHandler) ListByVisitor(c *fiber.Ctx) error {
	visitorID, err := parseIDParam(c, "visitorId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetProfileVisitsByVisitorID(c.UserContext(), visitorID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
