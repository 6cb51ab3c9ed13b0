package repositories

import (
	"context"

	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IProfileVisitRepository handles profile visit persistence.
type IProfileVisitRepository interface {
	IBaseRepository[models.ProfileVisit]
	FindAllByHostIDPaginated(ctx context.Context, hostID uuid.UUID, params queryparams.ListParams) ([]models.ProfileVisit, int64, error)
	FindAllByVisitorIDPaginated(ctx context.Context, visitorID uuid.UUID, params queryparams.ListParams) ([]models.ProfileVisit, int64, error)
}

// ProfileVisitRepository implements IProfileVisitRepository.
type ProfileVisitRepository struct {
	*BaseRepository[models.ProfileVisit]
}

// NewProfileVisitRepository builds the repository on the given handle.
func NewProfileVisitRepository(db *gorm.DB) IProfileVisitRepository {
	base := NewBaseRepository[models.ProfileVisit](db)
	base.SetAllowedSortColumns([]string{"created_at"})
	return &ProfileVisitRepository{BaseRepository: base}
}

func (r *ProfileVisitRepository) FindAllByHostIDPaginated(ctx context.Context, hostID uuid.UUID, params queryparams.ListParams) ([]models.ProfileVisit, int64, error) {
	return r.FindAllPaginated(ctx, params, NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("host_id = ?", hostID)
	})
}

func (r *ProfileVisitRepository) FindAllByVisitorIDPaginated(ctx context.Context, visitorID uuid.UUID, params queryparams.ListParams) ([]models.ProfileVisit, int64, error) {
	return r.FindAllPaginated(ctx, params, NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("visitor_id = ?", visitorID)
	})
}

var _ IProfileVisitRepository = (*ProfileVisitRepository)(nil)
