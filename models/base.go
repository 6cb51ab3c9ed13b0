package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel is embedded by every persisted entity. The id is an opaque uuid
// assigned once at creation; created_at/updated_at belong to the storage
// layer and are never part of audit snapshots.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetID satisfies Auditable for every embedding entity.
func (m *BaseModel) GetID() uuid.UUID { return m.ID }

// BeforeCreate assigns the id unless the caller already picked one (seeders do).
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
