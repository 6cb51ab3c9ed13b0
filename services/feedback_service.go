package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/pkg/queryparams"
	"citalink.app/repositories"

	"github.com/google/uuid"
)

const (
	ErrFeedbackNotFound ServiceError = "comentario no encontrado"
)

// CreateFeedbackInput carries the fields of a new platform feedback.
type CreateFeedbackInput struct {
	SenderID uuid.UUID
	Affair   string
	Message  string
}

// FeedbackPatch is a partial update; nil fields are left untouched.
type FeedbackPatch struct {
	Affair  *string
	Message *string
}

// IFeedbackService covers the feedback lifecycle and listings.
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, input CreateFeedbackInput) (*models.Feedback, error)
	UpdateFeedback(ctx context.Context, id, actorID uuid.UUID, patch FeedbackPatch) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id, deletedBy uuid.UUID) (bool, error)
	GetAllFeedback(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetFeedbackBySenderID(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// FeedbackService implements IFeedbackService.
type FeedbackService struct {
	repo      repositories.IFeedbackRepository
	guard     *ReferentialGuard
	lifecycle *Lifecycle[models.Feedback, *models.Feedback]
}

// NewFeedbackService wires the service with its repository and guard.
func NewFeedbackService(repo repositories.IFeedbackRepository, guard *ReferentialGuard) IFeedbackService {
	return &FeedbackService{
		repo:      repo,
		guard:     guard,
		lifecycle: NewLifecycle[models.Feedback, *models.Feedback](repo, guard),
	}
}

// CreateFeedback records a platform report from a user.
func (s *FeedbackService) CreateFeedback(ctx context.Context, input CreateFeedbackInput) (*models.Feedback, error) {
	if !models.ValidFeedbackAffairs[input.Affair] {
		return nil, fmt.Errorf("%w: asunto desconocido %q", ErrInvalidInput, input.Affair)
	}
	input.Message = strings.TrimSpace(input.Message)
	if input.Message == "" {
		return nil, fmt.Errorf("%w: el mensaje es requerido", ErrInvalidInput)
	}
	if err := s.guard.RequireUser(ctx, input.SenderID); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		SenderID: input.SenderID,
		Affair:   input.Affair,
		Message:  input.Message,
	}
	if err := s.lifecycle.Create(ctx, feedback); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Feedback created: %s (%s)", feedback.ID, feedback.Affair)
	return feedback, nil
}

// UpdateFeedback applies a partial update attributed to actorID.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, id, actorID uuid.UUID, patch FeedbackPatch) (*models.Feedback, error) {
	updated, err := s.lifecycle.Update(ctx, id, actorID, func(f *models.Feedback) error {
		if patch.Affair != nil {
			if !models.ValidFeedbackAffairs[*patch.Affair] {
				return fmt.Errorf("%w: asunto desconocido %q", ErrInvalidInput, *patch.Affair)
			}
			f.Affair = *patch.Affair
		}
		if patch.Message != nil {
			message := strings.TrimSpace(*patch.Message)
			if message == "" {
				return fmt.Errorf("%w: el mensaje es requerido", ErrInvalidInput)
			}
			f.Message = message
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteFeedback soft-deletes; repeating it is a successful no-op.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id, deletedBy uuid.UUID) (bool, error) {
	transitioned, err := s.lifecycle.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrFeedbackNotFound
		}
		return false, err
	}
	return transitioned, nil
}

func (s *FeedbackService) GetAllFeedback(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params, repositories.NotDeleted)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *FeedbackService) GetFeedbackBySenderID(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
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

var _ IFeedbackService = (*FeedbackService)(nil)
