package repositories

import (
	"context"

	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IAppointmentRepository handles appointment persistence.
type IAppointmentRepository interface {
	IBaseRepository[models.Appointment]
	FindAllByClientIDPaginated(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) ([]models.Appointment, int64, error)
	FindAllByProfIDPaginated(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) ([]models.Appointment, int64, error)
}

// AppointmentRepository implements IAppointmentRepository.
type AppointmentRepository struct {
	*BaseRepository[models.Appointment]
}

// NewAppointmentRepository builds the repository on the given handle.
func NewAppointmentRepository(db *gorm.DB) IAppointmentRepository {
	base := NewBaseRepository[models.Appointment](db)
	base.SetAllowedSortColumns([]string{
		"created_at", "status", "appointment_date_time",
	})
	return &AppointmentRepository{BaseRepository: base}
}

func (r *AppointmentRepository) FindAllByClientIDPaginated(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) ([]models.Appointment, int64, error) {
	scopes := append(appointmentFilterScopes(params), NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("client_id = ?", clientID)
	})
	return r.FindAllPaginated(ctx, params, scopes...)
}

func (r *AppointmentRepository) FindAllByProfIDPaginated(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) ([]models.Appointment, int64, error) {
	scopes := append(appointmentFilterScopes(params), NotDeleted, func(db *gorm.DB) *gorm.DB {
		return db.Where("prof_id = ?", profID)
	})
	return r.FindAllPaginated(ctx, params, scopes...)
}

func appointmentFilterScopes(params queryparams.ListParams) []Scope {
	var scopes []Scope
	if params.Status != "" {
		status := params.Status
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", status)
		})
	}
	return scopes
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)
