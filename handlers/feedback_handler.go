package handlers

import (
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler exposes the platform-feedback endpoints.
type FeedbackHandler struct {
	service services.IFeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service services.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type createFeedbackRequest struct {
	SenderID string `json:"senderId"`
	Affair   string `json:"affair"`
	Message  string `json:"message"`
}

type updateFeedbackRequest struct {
	ActorID string  `json:"actorId"`
	Affair  *string `json:"affair"`
	Message *string `json:"message"`
}

// Create records a feedback entry.
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var req createFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	senderID, err := parseIDField(req.SenderID)
	if err != nil {
		return respondError(c, err)
	}
	feedback, err := h.service.CreateFeedback(c.UserContext(), services.CreateFeedbackInput{
		SenderID: senderID,
		Affair:   req.Affair,
		Message:  req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// Update applies a partial update attributed to the actor in the body.
func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	actorID, err := parseIDField(req.ActorID)
	if err != nil {
		return respondError(c, err)
	}
	feedback, err := h.service.UpdateFeedback(c.UserContext(), id, actorID, services.FeedbackPatch{
		Affair:  req.Affair,
		Message: req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feedback)
}

// Delete soft-deletes a feedback entry.
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
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
	transitioned, err := h.service.DeleteFeedback(c.UserContext(), id, deletedBy)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, transitioned)
}

// List returns active feedback entries with pagination.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	result, err := h.service.GetAllFeedback(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListBySender returns a user's feedback entries.
func (h *FeedbackHandler) ListBySender(c *fiber.Ctx) error {
	senderID, err := parseIDParam(c, "senderId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetFeedbackBySenderID(c.UserContext(), senderID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
