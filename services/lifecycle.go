package services

import (
	"context"
	"errors"
	"time"

	"citalink.app/configs/configslog"
	"citalink.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lifecycle orchestrates every mutation of a tracked entity kind in a fixed
// order: referential guard → snapshot → mutate → ledger append → persist.
// One instance exists per entity kind; the per-kind services layer their
// validation and patch logic on top of it.
//
// The read-snapshot/compute/write sequence is intentionally not wrapped in a
// transaction: concurrent updates to the same entity may capture the same
// old_data, and both are still recorded in the ledger. The envelope and the
// ledger themselves always land in a single row write, so they can never be
// observed half-applied.
type Lifecycle[T any, PT Entity[T]] struct {
	repo     repositories.IBaseRepository[T]
	guard    *ReferentialGuard
	snapshot *SnapshotHook[T, PT]
	now      func() time.Time
}

// NewLifecycle wires the lifecycle for one entity kind.
func NewLifecycle[T any, PT Entity[T]](repo repositories.IBaseRepository[T], guard *ReferentialGuard) *Lifecycle[T, PT] {
	return &Lifecycle[T, PT]{
		repo:     repo,
		guard:    guard,
		snapshot: NewSnapshotHook[T, PT](repo),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source (tests).
func (l *Lifecycle[T, PT]) SetClock(now func() time.Time) { l.now = now }

// Create persists a brand-new entity: empty ledger, envelope unset, no
// snapshot. Referential validation belongs to the per-kind service, which
// knows which fields reference users.
func (l *Lifecycle[T, PT]) Create(ctx context.Context, entity PT) error {
	if err := l.repo.Create(ctx, (*T)(entity)); err != nil {
		configslog.Log.Error("Lifecycle.Create failed",
			zap.String("entity", entity.EntityName()), zap.Error(err))
		return err
	}
	return nil
}

// Update mutates an existing entity. apply receives the loaded entity after
// the snapshot was captured and applies the caller's partial patch; fields it
// leaves alone stay untouched. Exactly one ledger entry is appended for
// actorID on success.
func (l *Lifecycle[T, PT]) Update(ctx context.Context, id, actorID uuid.UUID, apply func(PT) error) (PT, error) {
	if err := l.guard.RequireUser(ctx, actorID); err != nil {
		return nil, err
	}
	entity, err := l.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	target := PT(entity)

	l.snapshot.Capture(ctx, target)
	if err := apply(target); err != nil {
		// Validation failed before anything was persisted; no side effects.
		return nil, err
	}
	target.Ledger().Append(actorID, l.now())

	if err := l.repo.Save(ctx, entity); err != nil {
		configslog.Log.Error("Lifecycle.Update save failed",
			zap.String("entity", target.EntityName()),
			zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return target, nil
}

// SoftDelete marks the entity deleted. The transition happens at most once:
// a repeated delete is a successful no-op that leaves the envelope, ledger
// and old_data exactly as they were. Returns whether this call performed the
// transition.
func (l *Lifecycle[T, PT]) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) (bool, error) {
	if err := l.guard.RequireUser(ctx, deletedBy); err != nil {
		return false, err
	}
	entity, err := l.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	target := PT(entity)

	if target.Deletion().IsDeleted {
		return false, nil
	}

	l.snapshot.Capture(ctx, target)
	now := l.now()
	target.Deletion().MarkDeleted(deletedBy, now)
	target.Ledger().Append(deletedBy, now)

	if err := l.repo.Save(ctx, entity); err != nil {
		configslog.Log.Error("Lifecycle.SoftDelete save failed",
			zap.String("entity", target.EntityName()),
			zap.String("id", id.String()), zap.Error(err))
		return false, err
	}
	return true, nil
}
