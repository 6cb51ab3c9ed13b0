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
	ErrReviewNotFound ServiceError = "calificación no encontrada"
)

// CreateReviewInput carries the fields of a new review.
type CreateReviewInput struct {
	ClientID uuid.UUID
	ProfID   uuid.UUID
	Stars    int
}

// ReviewPatch is a partial update; nil fields are left untouched.
type ReviewPatch struct {
	Stars *int
}

// IReviewService covers the review lifecycle and listings.
type IReviewService interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error)
	UpdateReview(ctx context.Context, id, actorID uuid.UUID, patch ReviewPatch) (*models.Review, error)
	DeleteReview(ctx context.Context, id, deletedBy uuid.UUID) (bool, error)
	GetAllReviews(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetReviewsByProfID(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetReviewsByClientID(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// ReviewService implements IReviewService.
type ReviewService struct {
	repo      repositories.IReviewRepository
	guard     *ReferentialGuard
	lifecycle *Lifecycle[models.Review, *models.Review]
}

// NewReviewService wires the service with its repository and guard.
func NewReviewService(repo repositories.IReviewRepository, guard *ReferentialGuard) IReviewService {
	return &ReviewService{
		repo:      repo,
		guard:     guard,
		lifecycle: NewLifecycle[models.Review, *models.Review](repo, guard),
	}
}

func validateStars(stars int) error {
	if stars < models.MinReviewStars || stars > models.MaxReviewStars {
		return fmt.Errorf("%w: las estrellas deben estar entre %d y %d",
			ErrInvalidInput, models.MinReviewStars, models.MaxReviewStars)
	}
	return nil
}

// CreateReview records a client's rating of a professional.
func (s *ReviewService) CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	if err := validateStars(input.Stars); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.ClientID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.ProfID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ClientID: input.ClientID,
		ProfID:   input.ProfID,
		Stars:    input.Stars,
	}
	if err := s.lifecycle.Create(ctx, review); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Review created: %s (%d stars)", review.ID, review.Stars)
	return review, nil
}

// UpdateReview applies a partial update attributed to actorID.
func (s *ReviewService) UpdateReview(ctx context.Context, id, actorID uuid.UUID, patch ReviewPatch) (*models.Review, error) {
	updated, err := s.lifecycle.Update(ctx, id, actorID, func(r *models.Review) error {
		if patch.Stars != nil {
			if err := validateStars(*patch.Stars); err != nil {
				return err
			}
			r.Stars = *patch.Stars
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteReview soft-deletes; repeating it is a successful no-op.
func (s *ReviewService) DeleteReview(ctx context.Context, id, deletedBy uuid.UUID) (bool, error) {
	transitioned, err := s.lifecycle.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrReviewNotFound
		}
		return false, err
	}
	return transitioned, nil
}

func (s *ReviewService) GetAllReviews(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params, repositories.NotDeleted)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *ReviewService) GetReviewsByProfID(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := s.guard.RequireUser(ctx, profID); err != nil {
		return nil, err
	}
	params.Validate()
	items, total, err := s.repo.FindAllByProfIDPaginated(ctx, profID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *ReviewService) GetReviewsByClientID(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := s.guard.RequireUser(ctx, clientID); err != nil {
		return nil, err
	}
	params.Validate()
	items, total, err := s.repo.FindAllByClientIDPaginated(ctx, clientID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

var _ IReviewService = (*ReviewService)(nil)
