package services

import (
	"context"
	"encoding/json"
	"errors"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/repositories"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Entity constrains PT to "pointer to T that carries the audit envelope".
// The lifecycle generics work on T for storage and on PT for the envelope.
type Entity[T any] interface {
	*T
	models.Auditable
}

// Marker stored in old_data when the previous state could not be read.
// Audit capture is best-effort and must never block a business write.
const snapshotFailureMarker = `{"error":"Fallo al capturar estado previo"}`

// SnapshotHook captures an entity's previous persisted state into old_data
// immediately before a mutation is applied. It performs its own read so the
// snapshot reflects what the store holds, not what the caller already loaded.
type SnapshotHook[T any, PT Entity[T]] struct {
	repo repositories.IBaseRepository[T]
}

// NewSnapshotHook builds the hook over the entity's repository.
func NewSnapshotHook[T any, PT Entity[T]](repo repositories.IBaseRepository[T]) *SnapshotHook[T, PT] {
	return &SnapshotHook[T, PT]{repo: repo}
}

// Capture sets target's old_data to the currently persisted field set,
// excluding ids, storage timestamps and (per kind) secrets and history rings.
// Failures degrade to a marker; they never abort the caller's write.
func (h *SnapshotHook[T, PT]) Capture(ctx context.Context, target PT) {
	prior, err := h.repo.FindByID(ctx, target.GetID())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// No persisted state for a non-new entity; record the explicit
			// empty marker instead of failing the write.
			target.SetOldData(datatypes.JSON([]byte(`{}`)))
			return
		}
		configslog.Log.Warn("old_data capture failed, write continues unaudited",
			zap.String("entity", target.EntityName()),
			zap.String("id", target.GetID().String()),
			zap.Error(err))
		target.SetOldData(datatypes.JSON([]byte(snapshotFailureMarker)))
		return
	}

	raw, err := json.Marshal(PT(prior).SnapshotFields())
	if err != nil {
		configslog.Log.Warn("old_data serialization failed, write continues unaudited",
			zap.String("entity", target.EntityName()),
			zap.String("id", target.GetID().String()),
			zap.Error(err))
		target.SetOldData(datatypes.JSON([]byte(snapshotFailureMarker)))
		return
	}
	target.SetOldData(datatypes.JSON(raw))
}
