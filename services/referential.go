package services

import (
	"context"
	"errors"

	"citalink.app/repositories"

	"github.com/google/uuid"
)

// ReferentialGuard validates referenced user ids before a lifecycle
// transition is allowed. Policy: a referenced user must exist AND not be
// soft-deleted, whether it acts (modifier, deleter) or is acted upon
// (client, prof, sender, ...). A deleted user acting as modifier would
// reopen the one-way deletion door, so the check is uniform.
type ReferentialGuard struct {
	users repositories.IUserRepository
}

// NewReferentialGuard builds the guard on the user repository.
func NewReferentialGuard(users repositories.IUserRepository) *ReferentialGuard {
	return &ReferentialGuard{users: users}
}

// RequireUser resolves id to an existing, non-deleted user.
func (g *ReferentialGuard) RequireUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}
	user, err := g.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Deleted.IsDeleted {
		return ErrUserNotFound
	}
	return nil
}

// RequireDistinct rejects records that would reference the same user twice
// (client/prof on appointments, visitor/host on profile visits).
func (g *ReferentialGuard) RequireDistinct(a, b uuid.UUID) error {
	if a == b {
		return ErrSelfReference
	}
	return nil
}
