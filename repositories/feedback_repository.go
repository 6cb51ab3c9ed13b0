package repositories

import (
	"context"

	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IFeedbackRepository handles feedback persistence.
type IFeedbackRepository interface {
	IBaseRepository[models.Feedback]
	FindAllBySenderIDPaginated(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) ([]models.Feedback, int64, error)
}

// FeedbackRepository implements IFeedbackRepository.
type FeedbackRepository struct {
	*BaseRepository[models.Feedback]
}

// NewFeedbackRepository builds the repository on the given handle.
func NewFeedbackRepository(db *gorm.DB) IFeedbackRepository {
	base := NewBaseRepository[models.Feedback](db)
	base.SetAllowedSortColumns([]string{"created_at", "affair"})
	return &FeedbackRepository{BaseRepository: base}
}

func (r *FeedbackRepository) FindAllBySenderIDPaginated(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) ([]models.Feedback, int64, error) {
	return r.FindAllPaginated(ctx, params, NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("sender_id = ?", senderID)
	})
}

var _ IFeedbackRepository = (*FeedbackRepository)(nil)
