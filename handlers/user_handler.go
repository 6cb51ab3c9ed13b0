package handlers

import (
	"citalink.app/models"
	"citalink.app/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes the account endpoints.
type UserHandler struct {
	service services.IUserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.IUserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerUserRequest struct {
	Email          string              `json:"email"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	Password       string              `json:"password"`
	Role           string              `json:"role"`
	ProfilePicture string              `json:"profilePicture"`
	Locations      models.LocationList `json:"locations"`
	Profession     *string             `json:"profession"`
	OfficePictures models.StringList   `json:"officePictures"`
}

type updateUserRequest struct {
	ActorID        string               `json:"actorId"`
	Email          *string              `json:"email"`
	FirstName      *string              `json:"firstName"`
	LastName       *string              `json:"lastName"`
	Password       *string              `json:"password"`
	Role           *string              `json:"role"`
	ProfilePicture *string              `json:"profilePicture"`
	Locations      *models.LocationList `json:"locations"`
	Profession     *string              `json:"profession"`
	OfficePictures *models.StringList   `json:"officePictures"`
	Strikes        *int                 `json:"strikes"`
	IsVerified     *bool                `json:"isVerified"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Device   string `json:"device"`
	IP       string `json:"ip"`
}

type deleteRequest struct {
	DeletedBy string `json:"deletedBy"`
}

// Register creates a new account.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	user, err := h.service.Register(c.UserContext(), services.RegisterUserInput{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Password:       req.Password,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
		Locations:      req.Locations,
		Profession:     req.Profession,
		OfficePictures: req.OfficePictures,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login authenticates and records the attempt in the login history.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	user, err := h.service.Login(c.UserContext(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Device:   req.Device,
		IP:       c.Get("X-Forwarded-For", req.IP),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetByID returns a single user, deleted or not; the deletion envelope is
// part of the payload so callers can tell.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.service.GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// List returns active users with pagination and filters.
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	result, err := h.service.GetAllUsers(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListDeleted returns soft-deleted users. Admin-facing.
func (h *UserHandler) ListDeleted(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	result, err := h.service.GetAllDeletedUsers(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Update applies a partial update attributed to the actor in the body.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.ErrInvalidInput)
	}
	actorID, err := parseIDField(req.ActorID)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.service.UpdateUser(c.UserContext(), id, actorID, services.UserPatch{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Password:       req.Password,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
		Locations:      req.Locations,
		Profession:     req.Profession,
		OfficePictures: req.OfficePictures,
		Strikes:        req.Strikes,
		IsVerified:     req.IsVerified,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Delete soft-deletes the account. Repeats answer 200 without rewriting
// the deletion envelope.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
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
	transitioned, err := h.service.DeleteUser(c.UserContext(), id, deletedBy)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, transitioned)
}
