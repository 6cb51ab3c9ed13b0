package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact affairs.
const (
	ContactAffairAppointment  = "agendarCita"
	ContactAffairRating       = "calificacion"
	ContactAffairRejection    = "rechazo"
	ContactAffairCancellation = "cancelacion"
	ContactAffairReport       = "reporte"
)

var ValidContactAffairs = map[string]bool{
	ContactAffairAppointment:  true,
	ContactAffairRating:       true,
	ContactAffairRejection:    true,
	ContactAffairCancellation: true,
	ContactAffairReport:       true,
}

// Report causes, required only when the affair is a report.
var ValidContactCauses = map[string]bool{
	"conductaInapropiada": true,
	"conductaSospechosa":  true,
	"estafa":              true,
	"negligencia":         true,
	"otro":                true,
}

// Contact is a message from one user to another: an appointment request, a
// rating notice, or a report against a professional.
type Contact struct {
	BaseModel
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"senderId"`
	ReceiverID  uuid.UUID `gorm:"type:uuid;not null;index" json:"receiverId"`
	Affair      string    `gorm:"type:varchar(20);not null" json:"affair"`
	Cause       string    `gorm:"type:varchar(30)" json:"cause,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsSent      bool      `gorm:"default:false;index" json:"isSent"`
	SendDate    time.Time `gorm:"not null" json:"sendDate"`

	AuditFields
}

func (*Contact) EntityName() string { return "contact" }

func (c *Contact) SnapshotFields() map[string]any {
	return map[string]any{
		"senderId":            c.SenderID,
		"receiverId":          c.ReceiverID,
		"affair":              c.Affair,
		"cause":               c.Cause,
		"description":         c.Description,
		"isSent":              c.IsSent,
		"sendDate":            c.SendDate,
		"deleted":             c.Deleted,
		"modificationHistory": c.ModificationHistory,
	}
}

var _ Auditable = (*Contact)(nil)
