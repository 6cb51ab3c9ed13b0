package models

import "github.com/google/uuid"

// Star rating bounds for reviews.
const (
	MinReviewStars = 1
	MaxReviewStars = 5
)

// Review is a client's star rating of a professional.
type Review struct {
	BaseModel
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"clientId"`
	ProfID   uuid.UUID `gorm:"type:uuid;not null;index" json:"profId"`
	Stars    int       `gorm:"not null" json:"stars"`

	AuditFields
}

func (*Review) EntityName() string { return "review" }

func (r *Review) SnapshotFields() map[string]any {
	return map[string]any{
		"clientId":            r.ClientID,
		"profId":              r.ProfID,
		"stars":               r.Stars,
		"deleted":             r.Deleted,
		"modificationHistory": r.ModificationHistory,
	}
}

var _ Auditable = (*Review)(nil)
