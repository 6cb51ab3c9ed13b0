package services

import (
	"context"
	"errors"
	"fmt"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/pkg/queryparams"
	"citalink.app/repositories"

	"github.com/google/uuid"
)

const (
	ErrContactNotFound ServiceError = "contacto no encontrado"
)

// CreateContactInput carries the fields of a new contact message.
type CreateContactInput struct {
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	Affair      string
	Cause       string
	Description string
}

// ContactPatch is a partial update; nil fields are left untouched.
type ContactPatch struct {
	Affair      *string
	Cause       *string
	Description *string
}

// IContactService covers the contact lifecycle and listings.
type IContactService interface {
	CreateContact(ctx context.Context, input CreateContactInput) (*models.Contact, error)
	UpdateContact(ctx context.Context, id, actorID uuid.UUID, patch ContactPatch) (*models.Contact, error)
	MarkContactSent(ctx context.Context, id, actorID uuid.UUID) (*models.Contact, error)
	DeleteContact(ctx context.Context, id, deletedBy uuid.UUID) (bool, error)
	GetAllContacts(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetContactsBySenderID(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetContactsByReceiverID(ctx context.Context, receiverID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// ContactService implements IContactService.
type ContactService struct {
	repo      repositories.IContactRepository
	guard     *ReferentialGuard
	lifecycle *Lifecycle[models.Contact, *models.Contact]
}

// NewContactService wires the service with its repository and guard.
func NewContactService(repo repositories.IContactRepository, guard *ReferentialGuard) IContactService {
	return &ContactService{
		repo:      repo,
		guard:     guard,
		lifecycle: NewLifecycle[models.Contact, *models.Contact](repo, guard),
	}
}

// validateContactAffair checks the affair and its report-only companions.
// Cause and description are mandatory for reports and meaningless otherwise.
func validateContactAffair(affair, cause, description string) error {
	if !models.ValidContactAffairs[affair] {
		return fmt.Errorf("%w: asunto desconocido %q", ErrInvalidInput, affair)
	}
	if affair == models.ContactAffairReport {
		if !models.ValidContactCauses[cause] {
			return fmt.Errorf("%w: la causa del reporte es requerida", ErrInvalidInput)
		}
		if description == "" {
			return fmt.Errorf("%w: la descripción del reporte es requerida", ErrInvalidInput)
		}
	}
	return nil
}

// CreateContact records a message from sender to receiver.
func (s *ContactService) CreateContact(ctx context.Context, input CreateContactInput) (*models.Contact, error) {
	if err := validateContactAffair(input.Affair, input.Cause, input.Description); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.SenderID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.ReceiverID); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		SenderID:    input.SenderID,
		ReceiverID:  input.ReceiverID,
		Affair:      input.Affair,
		Cause:       input.Cause,
		Description: input.Description,
		SendDate:    s.lifecycle.now(),
	}
	if err := s.lifecycle.Create(ctx, contact); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Contact created: %s (%s)", contact.ID, contact.Affair)
	return contact, nil
}

// UpdateContact applies a partial update attributed to actorID.
func (s *ContactService) UpdateContact(ctx context.Context, id, actorID uuid.UUID, patch ContactPatch) (*models.Contact, error) {
	updated, err := s.lifecycle.Update(ctx, id, actorID, func(c *models.Contact) error {
		affair := c.Affair
		cause := c.Cause
		description := c.Description
		if patch.Affair != nil {
			affair = *patch.Affair
		}
		if patch.Cause != nil {
			cause = *patch.Cause
		}
		if patch.Description != nil {
			description = *patch.Description
		}
		if err := validateContactAffair(affair, cause, description); err != nil {
			return err
		}
		c.Affair = affair
		c.Cause = cause
		c.Description = description
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return updated, nil
}

// MarkContactSent flips the sent flag and refreshes the send date.
func (s *ContactService) MarkContactSent(ctx context.Context, id, actorID uuid.UUID) (*models.Contact, error) {
	updated, err := s.lifecycle.Update(ctx, id, actorID, func(c *models.Contact) error {
		c.IsSent = true
		c.SendDate = s.lifecycle.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteContact soft-deletes; repeating it is a successful no-op.
func (s *ContactService) DeleteContact(ctx context.Context, id, deletedBy uuid.UUID) (bool, error) {
	transitioned, err := s.lifecycle.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrContactNotFound
		}
		return false, err
	}
	return transitioned, nil
}

func (s *ContactService) GetAllContacts(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params, repositories.NotDeleted)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *ContactService) GetContactsBySenderID(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := s.guard.RequireUser(ctx, senderID); err != nil {
		return nil, err
	}
	params.Validate()
	items, total, err := s.repo.FindAllBySenderIDPaginated(ctx, senderID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *ContactService) GetContactsByReceiverID(ctx context.Context, receiverID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := s.guard.RequireUser(ctx, receiverID); err != nil {
		return nil, err
	}
	params.Validate()
	items, total, err := s.repo.FindAllByReceiverIDPaginated(ctx, receiverID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

var _ IContactService = (*ContactService)(nil)
