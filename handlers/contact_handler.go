package handlers

import (
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler exposes the contact-message endpoints.
type ContactHandler struct {
	service services.IContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service services.IContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type createContactRequest struct {
	SenderID    string `json:"senderId"`
	ReceiverID  string `json:"receiverId"`
	Affair      string `json:"affair"`
	Cause       string `json:"cause"`
	Description string `json:"description"`
}

type updateContactRequest struct {
	ActorID     string  `json:"actorId"`
	Affair      *string `json:"affair"`
	Cause       *string `json:"cause"`
	Description *string `json:"description"`
}

type markSentRequest struct {
	ActorID string `json:"actorId"`
}

// Create records a contact message between two users.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req createContactRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	senderID, err := parseIDField(req.SenderID)
	if err != nil {
		return respondError(c, err)
	}
	receiverID, err := parseIDField(req.ReceiverID)
	if err != nil {
		return respondError(c, err)
	}
	contact, err := h.service.CreateContact(c.UserContext(), services.CreateContactInput{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Affair:      req.Affair,
		Cause:       req.Cause,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// Update applies a partial update attributed to the actor in the body.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	actorID, err := parseIDField(req.ActorID)
	if err != nil {
		return respondError(c, err)
	}
	contact, err := h.service.UpdateContact(c.UserContext(), id, actorID, services.ContactPatch{
		Affair:      req.Affair,
		Cause:       req.Cause,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contact)
}

// MarkSent flips the sent flag once delivery has happened.
func (h *ContactHandler) MarkSent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req markSentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	actorID, err := parseIDField(req.ActorID)
	if err != nil {
		return respondError(c, err)
	}
	contact, err := h.service.MarkContactSent(c.UserContext(), id, actorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contact)
}

// Delete soft-deletes a contact message.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
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
	transitioned, err := h.service.DeleteContact(c.UserContext(), id, deletedBy)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, transitioned)
}

// List returns active contact messages with pagination.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	result, err := h.service.GetAllContacts(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListBySender returns the messages a user has sent.
func (h *ContactHandler) ListBySender(c *fiber.Ctx) error {
	senderID, err := parseIDParam(c, "senderId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetContactsBySenderID(c.UserContext(), senderID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListByReceiver returns the messages addressed to a user.
func (h *ContactHandler) ListByReceiver(c *fiber.Ctx) error {
	receiverID, err := parseIDParam(c, "receiverId")
	if err != nil {
		return respondError(c, err)
	}
	params := listParamsFromQuery(c)
	result, err := h.service.GetContactsByReceiverID(c.UserContext(), receiverID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
