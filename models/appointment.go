package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	AppointmentStatusTentative   = "tentativo"
	AppointmentStatusAccepted    = "aceptado"
	AppointmentStatusRejected    = "rechazado"
	AppointmentStatusCancelled   = "cancelado"
	AppointmentStatusRescheduled = "reorganizado"
)

// ValidAppointmentStatuses indexes the accepted status values.
var ValidAppointmentStatuses = map[string]bool{
	AppointmentStatusTentative:   true,
	AppointmentStatusAccepted:    true,
	AppointmentStatusRejected:    true,
	AppointmentStatusCancelled:   true,
	AppointmentStatusRescheduled: true,
}

// Appointment links a client with a professional at an office and time.
type Appointment struct {
	BaseModel
	ClientID            uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_client_time" json:"clientId"`
	ProfID              uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_prof_time" json:"profId"`
	Status              string    `gorm:"type:varchar(20);not null;default:'tentativo';index" json:"status"`
	Office              string    `gorm:"type:text;not null" json:"office"`
	AppointmentDateTime time.Time `gorm:"not null;index:idx_appointments_client_time;index:idx_appointments_prof_time" json:"appointmentDateTime"`

	AuditFields
}

func (*Appointment) EntityName() string { return "appointment" }

func (a *Appointment) SnapshotFields() map[string]any {
	return map[string]any{
		"clientId":            a.ClientID,
		"profId":              a.ProfID,
		"status":              a.Status,
		"office":              a.Office,
		"appointmentDateTime": a.AppointmentDateTime,
		"deleted":             a.Deleted,
		"modificationHistory": a.ModificationHistory,
	}
}

var _ Auditable = (*Appointment)(nil)
