package repositories

import (
	"context"
	"errors"

	"citalink.app/configs/configslog"
	"citalink.app/pkg/queryparams"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned whenever a lookup resolves no row. Services
// translate it into their own not-found errors.
var ErrNotFound = errors.New("record not found")

// Scope narrows a query (ownership filters, deletion filters, ...).
type Scope = func(*gorm.DB) *gorm.DB

// NotDeleted keeps only rows whose deletion envelope is unset. Deletion is an
// explicit column here, not gorm.DeletedAt, because administrative paths must
// keep reading deleted rows.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// OnlyDeleted keeps only logically deleted rows.
func OnlyDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", true)
}

// IBaseRepository is the storage surface the lifecycle layer works against,
// shared by every entity kind.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, entity *T) error
	FindAllPaginated(ctx context.Context, params queryparams.ListParams, scopes ...Scope) ([]T, int64, error)
	Count(ctx context.Context, scopes ...Scope) (int64, error)
}

// BaseRepository implements IBaseRepository on a gorm handle.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]string
}

// NewBaseRepository builds a repository for T. Sorting is restricted to
// created_at until SetAllowedSortColumns widens it.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:          db,
		sortColumns: map[string]string{"created_at": "created_at", "createdAt": "created_at"},
	}
}

// SetAllowedSortColumns registers the columns a caller may sort by. Anything
// else falls back to created_at.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	for _, col := range columns {
		r.sortColumns[col] = col
	}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create persists a brand-new entity.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot create a nil entity")
	}
	return r.getDB(ctx).Create(entity).Error
}

// FindByID loads one row by primary key, deleted or not.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	if id == uuid.Nil {
		return nil, ErrNotFound
	}
	var entity T
	err := r.getDB(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BaseRepository.FindByID: DB error", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return &entity, nil
}

// Save writes the full row back. The audit columns (old_data, ledger,
// deletion envelope) live on the row, so one Save lands them together with
// the domain mutation.
func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot save a nil entity")
	}
	return r.getDB(ctx).Save(entity).Error
}

// FindAllPaginated lists rows under the given scopes with a filtered total.
func (r *BaseRepository[T]) FindAllPaginated(ctx context.Context, params queryparams.ListParams, scopes ...Scope) ([]T, int64, error) {
	var (
		entities []T
		total    int64
	)
	params.Validate()

	query := r.getDB(ctx).Model(new(T)).Scopes(scopes...)
	if err := query.Count(&total).Error; err != nil {
		configslog.Log.Error("BaseRepository.Count (paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return entities, 0, nil
	}

	orderColumn, ok := r.sortColumns[params.SortBy]
	if !ok {
		configslog.SLog.Warnw("Unknown sort column requested, falling back to created_at",
			"requestedSortBy", params.SortBy)
		orderColumn = "created_at"
	}
	query = query.Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset())

	if err := query.Find(&entities).Error; err != nil {
		configslog.Log.Error("BaseRepository.Find (paginated): DB error", zap.Error(err))
		return nil, total, err
	}
	return entities, total, nil
}

// Count counts rows under the given scopes.
func (r *BaseRepository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(new(T)).Scopes(scopes...).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
