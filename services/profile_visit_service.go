package services

import (
	"context"
	"errors"

	"citalink.app/models"
	"citalink.app/pkg/queryparams"
	"citalink.app/repositories"

	"github.com/google/uuid"
)

const (
	ErrProfileVisitNotFound ServiceError = "visita de perfil no encontrada"
)

// CreateProfileVisitInput carries the fields of a new visit record.
type CreateProfileVisitInput struct {
	VisitorID uuid.UUID
	HostID    uuid.UUID
}

// IProfileVisitService covers the visit lifecycle and listings. Visits have
// no mutable domain fields, so there is no update operation.
type IProfileVisitService interface {
	CreateProfileVisit(ctx context.Context, input CreateProfileVisitInput) (*models.ProfileVisit, error)
	DeleteProfileVisit(ctx context.Context, id, deletedBy uuid.UUID) (bool, error)
	GetAllProfileVisits(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetProfileVisitsByHostID(ctx context.Context, hostID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetProfileVisitsByVisitorID(ctx context.Context, visitorID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// ProfileVisitService implements IProfileVisitService.
type ProfileVisitService struct {
	repo      repositories.IProfileVisitRepository
	guard     *ReferentialGuard
	lifecycle *Lifecycle[models.ProfileVisit, *models.ProfileVisit]
}

// NewProfileVisitService wires the service with its repository and guard.
func NewProfileVisitService(repo repositories.IProfileVisitRepository, guard *ReferentialGuard) IProfileVisitService {
	return &ProfileVisitService{
		repo:      repo,
		guard:     guard,
		lifecycle: NewLifecycle[models.ProfileVisit, *models.ProfileVisit](repo, guard),
	}
}

// CreateProfileVisit records a visit. Visitor and host must be distinct,
// existing users; a self-visit is rejected regardless of resolution.
func (s *ProfileVisitService) CreateProfileVisit(ctx context.Context, input CreateProfileVisitInput) (*models.ProfileVisit, error) {
	if err := s.guard.RequireDistinct(input.VisitorID, input.HostID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.VisitorID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.HostID); err != nil {
		return nil, err
	}

	visit := &models.ProfileVisit{
		VisitorID: input.VisitorID,
		HostID:    input.HostID,
	}
	if err := s.lifecycle.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// DeleteProfileVisit soft-deletes; repeating it is a successful no-op.
func (s *ProfileVisitService) DeleteProfileVisit(ctx context.Context, id, deletedBy uuid.UUID) (bool, error) {
	transitioned, err := s.lifecycle.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrProfileVisitNotFound
		}
		return false, err
	}
	return transitioned, nil
}

func (s *ProfileVisitService) GetAllProfileVisits(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params, repositories.NotDeleted)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *ProfileVisitService) GetProfileVisitsByHostID(ctx context.Context, hostID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := s.guard.RequireUser(ctx, hostID); err != nil {
		return nil, err
	}
	params.Validate()
	items, total, err := s.repo.FindAllByHostIDPaginated(ctx, hostID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *ProfileVisitService) GetProfileVisitsByVisitorID(ctx context.Context, visitorID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := s.guard.RequireUser(ctx, visitorID); err != nil {
		return nil, err
	}
	params.Validate()
	items, total, err := s.repo.FindAllByVisitorIDPaginated(ctx, visitorID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

var _ IProfileVisitService = (*ProfileVisitService)(nil)
