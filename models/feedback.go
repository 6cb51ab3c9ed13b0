package models

import "github.com/google/uuid"

// Feedback affairs.
const (
	FeedbackAffairBug        = "bug"
	FeedbackAffairSuggestion = "sugerencia"
	FeedbackAffairOther      = "otro"
)

var ValidFeedbackAffairs = map[string]bool{
	FeedbackAffairBug:        true,
	FeedbackAffairSuggestion: true,
	FeedbackAffairOther:      true,
}

// Feedback is a platform report sent by any user.
type Feedback struct {
	BaseModel
	SenderID uuid.UUID `gorm:"type:uuid;not null;index" json:"senderId"`
	Affair   string    `gorm:"type:varchar(20);not null" json:"affair"`
	Message  string    `gorm:"type:text;not null" json:"message"`

	AuditFields
}

func (*Feedback) EntityName() string { return "feedback" }

func (f *Feedback) SnapshotFields() map[string]any {
	return map[string]any{
		"senderId":            f.SenderID,
		"affair":              f.Affair,
		"message":             f.Message,
		"deleted":             f.Deleted,
		"modificationHistory": f.ModificationHistory,
	}
}

var _ Auditable = (*Feedback)(nil)
