package repositories

import (
	"context"

	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IContactRepository handles contact persistence.
type IContactRepository interface {
	IBaseRepository[models.Contact]
	FindAllBySenderIDPaginated(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) ([]models.Contact, int64, error)
	FindAllByReceiverIDPaginated(ctx context.Context, receiverID uuid.UUID, params queryparams.ListParams) ([]models.Contact, int64, error)
}

// ContactRepository implements IContactRepository.
type ContactRepository struct {
	*BaseRepository[models.Contact]
}

// NewContactRepository builds the repository on the given handle.
func NewContactRepository(db *gorm.DB) IContactRepository {
	base := NewBaseRepository[models.Contact](db)
	base.SetAllowedSortColumns([]string{"created_at", "affair", "is_sent", "send_date"})
	return &ContactRepository{BaseRepository: base}
}

func (r *ContactRepository) FindAllBySenderIDPaginated(ctx context.Context, senderID uuid.UUID, params queryparams.ListParams) ([]models.Contact, int64, error) {
	return r.FindAllPaginated(ctx, params, NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("sender_id = ?", senderID)
	})
}

func (r *ContactRepository) FindAllByReceiverIDPaginated(ctx context.Context, receiverID uuid.UUID, params queryparams.ListParams) ([]models.Contact, int64, error) {
	return r.FindAllPaginated(ctx, params, NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("receiver_id = ?", receiverID)
	})
}

var _ IContactRepository = (*ContactRepository)(nil)
