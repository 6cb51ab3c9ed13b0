package repositories

import (
	"context"
	"errors"
	"strings"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository handles user persistence.
type IUserRepository interface {
	IBaseRepository[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAllFiltered(ctx context.Context, params queryparams.ListParams, onlyDeleted bool) ([]models.User, int64, error)
	SuspendOverdue(ctx context.Context) (int64, error)
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	*BaseRepository[models.User]
}

// NewUserRepository builds the repository on the given handle.
func NewUserRepository(db *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](db)
	base.SetAllowedSortColumns([]string{
		"created_at", "email", "first_name", "last_name", "role", "last_login",
	})
	return &UserRepository{BaseRepository: base}
}

// FindByEmail resolves a user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := r.getDB(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindAllFiltered lists users with the optional name/role/profession filters.
// onlyDeleted switches to the administrative deleted-users listing.
func (r *UserRepository) FindAllFiltered(ctx context.Context, params queryparams.ListParams, onlyDeleted bool) ([]models.User, int64, error) {
	scopes := []Scope{NotDeleted}
	if onlyDeleted {
		scopes = []Scope{OnlyDeleted}
	}
	if params.FirstName != "" {
		needle := "%" + strings.ToLower(params.FirstName) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("lower(first_name) LIKE ?", needle)
		})
	}
	if params.LastName != "" {
		needle := "%" + strings.ToLower(params.LastName) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("lower(last_name) LIKE ?", needle)
		})
	}
	if params.Role != "" {
		role := params.Role
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("role = ?", role)
		})
	}
	if params.Profession != "" {
		profession := params.Profession
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("profession = ?", profession)
		})
	}
	return r.FindAllPaginated(ctx, params, scopes...)
}

// SuspendOverdue suspends every account at or past the strike threshold in a
// single statement and returns how many rows changed. Run by the daily sweep.
func (r *UserRepository) SuspendOverdue(ctx context.Context) (int64, error) {
	result := r.getDB(ctx).Model(&models.User{}).
		Where("strikes >= ? AND is_suspended = ?", models.SuspensionStrikeThreshold, false).
		Update("is_suspended", true)
	if result.Error != nil {
		configslog.Log.Error("UserRepository.SuspendOverdue: DB error", zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ IUserRepository = (*UserRepository)(nil)
