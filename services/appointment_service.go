package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/pkg/queryparams"
	"citalink.app/repositories"

	"github.com/google/uuid"
)

const (
	ErrAppointmentNotFound ServiceError = "cita no encontrada"
)

// CreateAppointmentInput carries the fields required to book an appointment.
type CreateAppointmentInput struct {
	ClientID            uuid.UUID
	ProfID              uuid.UUID
	Status              string
	Office              string
	AppointmentDateTime time.Time
}

// AppointmentPatch is a partial update; nil fields are left untouched.
type AppointmentPatch struct {
	Status              *string
	Office              *string
	AppointmentDateTime *time.Time
}

// IAppointmentService covers the appointment lifecycle and listings.
type IAppointmentService interface {
	CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id, actorID uuid.UUID, patch AppointmentPatch) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id, deletedBy uuid.UUID) (bool, error)
	GetAllAppointments(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAppointmentsByClientID(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAppointmentsByProfID(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// AppointmentService implements IAppointmentService.
type AppointmentService struct {
	repo      repositories.IAppointmentRepository
	guard     *ReferentialGuard
	lifecycle *Lifecycle[models.Appointment, *models.Appointment]
}

// NewAppointmentService wires the service with its repository and guard.
func NewAppointmentService(repo repositories.IAppointmentRepository, guard *ReferentialGuard) IAppointmentService {
	return &AppointmentService{
		repo:      repo,
		guard:     guard,
		lifecycle: NewLifecycle[models.Appointment, *models.Appointment](repo, guard),
	}
}

func validateAppointmentStatus(status string) error {
	if !models.ValidAppointmentStatuses[status] {
		return fmt.Errorf("%w: estado de cita desconocido %q", ErrInvalidInput, status)
	}
	return nil
}

// CreateAppointment books a new appointment between a client and a
// professional. Client and professional must be distinct, existing users.
func (s *AppointmentService) CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*models.Appointment, error) {
	if input.Status == "" {
		input.Status = models.AppointmentStatusTentative
	}
	if err := validateAppointmentStatus(input.Status); err != nil {
		return nil, err
	}
	if input.Office == "" {
		return nil, fmt.Errorf("%w: la oficina de la cita es requerida", ErrInvalidInput)
	}
	if input.AppointmentDateTime.IsZero() {
		return nil, fmt.Errorf("%w: la fecha y la hora de la cita son requeridas", ErrInvalidInput)
	}

	// Distinctness is checked before resolution so that clientId == profId
	// fails the same way whether or not the id resolves.
	if err := s.guard.RequireDistinct(input.ClientID, input.ProfID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.ClientID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.ProfID); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ClientID:            input.ClientID,
		ProfID:              input.ProfID,
		Status:              input.Status,
		Office:              input.Office,
		AppointmentDateTime: input.AppointmentDateTime,
	}
	if err := s.lifecycle.Create(ctx, appointment); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Appointment created: %s (client %s, prof %s)",
		appointment.ID, appointment.ClientID, appointment.ProfID)
	return appointment, nil
}

// UpdateAppointment applies a partial update attributed to actorID.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id, actorID uuid.UUID, patch AppointmentPatch) (*models.Appointment, error) {
	updated, err := s.lifecycle.Update(ctx, id, actorID, func(a *models.Appointment) error {
		if patch.Status != nil {
			if err := validateAppointmentStatus(*patch.Status); err != nil {
				return err
			}
			a.Status = *patch.Status
		}
		if patch.Office != nil {
			if *patch.Office == "" {
				return fmt.Errorf("%w: la oficina de la cita es requerida", ErrInvalidInput)
			}
			a.Office = *patch.Office
		}
		if patch.AppointmentDateTime != nil {
			if patch.AppointmentDateTime.IsZero() {
				return fmt.Errorf("%w: la fecha y la hora de la cita son requeridas", ErrInvalidInput)
			}
			a.AppointmentDateTime = *patch.AppointmentDateTime
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteAppointment soft-deletes; repeating it is a successful no-op.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id, deletedBy uuid.UUID) (bool, error) {
	transitioned, err := s.lifecycle.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrAppointmentNotFound
		}
		return false, err
	}
	if transitioned {
		configslog.SLog.Infof("Appointment soft-deleted: %s (by %s)", id, deletedBy)
	}
	return transitioned, nil
}

func (s *AppointmentService) GetAllAppointments(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllPaginated(ctx, params, repositories.NotDeleted)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

func (s *AppointmentService) GetAppointmentsByClientID(ctx context.Context, clientID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
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

func (s *AppointmentService) GetAppointmentsByProfID(ctx context.Context, profID uuid.UUID, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
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

var _ IAppointmentService = (*AppointmentService)(nil)
