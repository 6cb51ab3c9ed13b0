package handlers

import (
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler exposes the review endpoints.
type ReviewHandler struct {
	service services.IReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service services.IReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	ClientID string `json:"clientId"`
	ProfID   string `json:"profId"`
	Stars    int    `json:"stars"`
}

type updateReviewRequest struct {
	ActorID string `json:"actorId"`
	Stars   *int   `json:"stars"`
}

// Create records a client's rating of a professional.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req createReviewRequest
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
	review, err := h.service.CreateReview(c.UserContext(), services.CreateReviewInput{
		ClientID: clientID,
		ProfID:   profID,
		Stars:    req.Stars,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// Update applies a partial update attributed to the actor in the body.
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	actorID, err := parseIDField(req.ActorID)
	if err != nil {
		return respondError(c, err)
	}
	review, err := h.service.UpdateReview(c.UserContext(), id, actorID, services.ReviewPatch{
		Stars: req.Stars,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// Delete soft-deletes a review.
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
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
	transitioned, err := h.service.DeleteReview(c.UserContext(), id, deletedBy)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, transitioned)
}

// List returns active reviews with pagination.
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	result, err := h.service.GetAllReviews(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListByProf returns the reviews received by a professional.
func (h *ReviewHandler) ListByProf(c *fiber.Ctx) error {
	profID, err := parseIDParam(c, "profId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetReviewsByProfID(c.UserContext(), profID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListByClient returns the reviews written by a client.
func (h *ReviewHandler) ListByClient(c *fiber.Ctx) error {
	clientID, err := parseIDParam(c, "clientId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetReviewsByClientID(c.UserContext(), clientID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
