package repositories

import (
	"context"

	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IReviewRepository handles review persistence.
type IReviewRepository interface {
	IBaseRepository[models.Review]
	FindAllByProfIDPaginated(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) ([]models.Review, int64, error)
	FindAllByClientIDPaginated(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) ([]models.Review, int64, error)
}

// ReviewRepository implements IReviewRepository.
type ReviewRepository struct {
	*BaseRepository[models.Review]
}

// NewReviewRepository builds the repository on the given handle.
func NewReviewRepository(db *gorm.DB) IReviewRepository {
	base := NewBaseRepository[models.Review](db)
	base.SetAllowedSortColumns([]string{"created_at", "stars"})
	return &ReviewRepository{BaseRepository: base}
}

func (r *ReviewRepository) FindAllByProfIDPaginated(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) ([]models.Review, int64, error) {
	return r.FindAllPaginated(ctx, params, NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("prof_id = ?", profID)
	})
}

func (r *ReviewRepository) FindAllByClientIDPaginated(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) ([]models.Review, int64, error) {
	return r.FindAllPaginated(ctx, params, NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("client_id = ?", clientID)
	})
}

var _ IReviewRepository = (*ReviewRepository)(nil)
