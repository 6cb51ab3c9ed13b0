package models

import "github.com/google/uuid"

// ProfileVisit records one user viewing another's profile. Visitor and host
// are immutable once recorded; the entity still carries the full audit
// envelope so visits can be soft-deleted and attributed.
type ProfileVisit struct {
	BaseModel
	VisitorID uuid.UUID `gorm:"type:uuid;not null;index" json:"visitorId"`
	HostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"hostId"`

	AuditFields
}

func (*ProfileVisit) EntityName() string { return "profile_visit" }

func (v *ProfileVisit) SnapshotFields() map[string]any {
	return map[string]any{
		"visitorId":           v.VisitorID,
		"hostId":              v.HostID,
		"deleted":             v.Deleted,
		"modificationHistory": v.ModificationHistory,
	}
}

var _ Auditable = (*ProfileVisit)(nil)
