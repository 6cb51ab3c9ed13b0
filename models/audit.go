package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DeletionEnvelope marks logical deletion. The transition to IsDeleted=true is
// one-way: nothing in the codebase ever flips it back, and MarkDeleted refuses
// to overwrite DeletedBy/DeletedAt once set.
type DeletionEnvelope struct {
	IsDeleted bool       `gorm:"column:is_deleted;default:false;index" json:"isDeleted"`
	DeletedBy *uuid.UUID `gorm:"column:deleted_by;type:uuid" json:"isDeletedBy,omitempty"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

// MarkDeleted flips the envelope exactly once. It reports false when the
// entity was already deleted, so callers can treat a repeated delete as a
// successful no-op.
func (e *DeletionEnvelope) MarkDeleted(actorID uuid.UUID, now time.Time) bool {
	if e.IsDeleted {
		return false
	}
	at := now
	e.IsDeleted = true
	e.DeletedBy = &actorID
	e.DeletedAt = &at
	return true
}

// ModificationRecord attributes one mutation to one user.
type ModificationRecord struct {
	UserID       uuid.UUID `json:"userId"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// ModificationLedger is the append-only modification history of an entity,
// stored as a json column on the entity row itself. Insertion order is
// significant: most recent last. Growth is unbounded.
type ModificationLedger []ModificationRecord

// Append records one mutation. Prior entries are never touched.
func (l *ModificationLedger) Append(actorID uuid.UUID, now time.Time) {
	*l = append(*l, ModificationRecord{UserID: actorID, ModifiedDate: now})
}

// Last returns the most recent record, or false on an empty ledger.
func (l ModificationLedger) Last() (ModificationRecord, bool) {
	if len(l) == 0 {
		return ModificationRecord{}, false
	}
	return l[len(l)-1], true
}

func (l ModificationLedger) Value() (driver.Value, error) {
	if l == nil {
		l = ModificationLedger{}
	}
	return jsonColumnValue(l)
}

func (l *ModificationLedger) Scan(value any) error {
	return jsonColumnScan(l, value)
}

func (ModificationLedger) GormDataType() string { return "json" }

func (ModificationLedger) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonDBDataType(db, field)
}

// AuditFields is the audit envelope embedded by every tracked entity: the
// deletion flag, the previous-state snapshot and the modification ledger.
// Because all three live on the entity row, envelope and ledger updates land
// in the same row write.
type AuditFields struct {
	Deleted             DeletionEnvelope   `gorm:"embedded" json:"deleted"`
	OldData             datatypes.JSON     `gorm:"column:old_data" json:"oldData,omitempty"`
	ModificationHistory ModificationLedger `gorm:"column:modification_history" json:"modificationHistory"`
}

func (a *AuditFields) Deletion() *DeletionEnvelope { return &a.Deleted }
func (a *AuditFields) Ledger() *ModificationLedger { return &a.ModificationHistory }
func (a *AuditFields) SetOldData(d datatypes.JSON) { a.OldData = d }

// Auditable is what the lifecycle layer needs from an entity: identity, the
// audit envelope, and the kind-specific field set that goes into old_data.
type Auditable interface {
	GetID() uuid.UUID
	EntityName() string
	Deletion() *DeletionEnvelope
	Ledger() *ModificationLedger
	SetOldData(d datatypes.JSON)
	// SnapshotFields returns the persisted field set that belongs in old_data.
	// Kinds with secrets or bounded audit rings (User) leave those out.
	SnapshotFields() map[string]any
}

// --- json column plumbing shared by the ledger and the user history rings ---

func jsonColumnValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonColumnScan(dst any, value any) error {
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported source type for json column")
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func jsonDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	default:
		return "JSON"
	}
}
