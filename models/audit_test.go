package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkDeletedTransitionsOnce(t *testing.T) {
	env := DeletionEnvelope{}
	actor := uuid.New()
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.True(t, env.MarkDeleted(actor, first))
	assert.True(t, env.IsDeleted)
	require.NotNil(t, env.DeletedBy)
	assert.Equal(t, actor, *env.DeletedBy)
	require.NotNil(t, env.DeletedAt)
	assert.Equal(t, first, *env.DeletedAt)

	other := uuid.New()
	assert.False(t, env.MarkDeleted(other, first.Add(time.Hour)))
	assert.Equal(t, actor, *env.DeletedBy, "repeated delete must not rewrite the envelope")
	assert.Equal(t, first, *env.DeletedAt)
}

func TestModificationLedgerAppendsInOrder(t *testing.T) {
	var ledger ModificationLedger
	_, ok := ledger.Last()
	assert.False(t, ok)

	first := uuid.New()
	second := uuid.New()
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	ledger.Append(first, t0)
	ledger.Append(second, t0.Add(time.Minute))

	require.Len(t, ledger, 2)
	assert.Equal(t, first, ledger[0].UserID)
	assert.Equal(t, second, ledger[1].UserID)

	last, ok := ledger.Last()
	require.True(t, ok)
	assert.Equal(t, second, last.UserID)
}

func TestLoginHistoryKeepsNewestFive(t *testing.T) {
	var history LoginHistory
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < MaxLoginHistory+1; i++ {
		history.Push(LoginRecord{
			LoginDate: base.Add(time.Duration(i) * time.Hour),
			Device:    "device",
			IP:        "127.0.0.1",
		})
	}

	require.Len(t, history, MaxLoginHistory)
	assert.Equal(t, base.Add(5*time.Hour), history[0].LoginDate, "newest entry goes first")
	assert.Equal(t, base.Add(time.Hour), history[len(history)-1].LoginDate, "oldest surviving entry is the second ever")
}

func TestPasswordHistoryKeepsNewestThree(t *testing.T) {
	var history PasswordHistory
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < MaxPasswordHistory+1; i++ {
		history.Push(PasswordRecord{
			Password:  "hash",
			ChangedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	require.Len(t, history, MaxPasswordHistory)
	assert.Equal(t, base.Add(3*time.Hour), history[0].ChangedAt)
	assert.Equal(t, base.Add(time.Hour), history[len(history)-1].ChangedAt)
}

func TestUserSnapshotFieldsExcludeSecrets(t *testing.T) {
	user := &User{
		Email:        "cliente@example.com",
		FirstName:    "Ana",
		LastName:     "García",
		PasswordHash: "$2a$10$secret",
		Role:         RoleClient,
		HistoricalLogins: LoginHistory{
			{LoginDate: time.Now(), Device: "x", IP: "y"},
		},
		PasswordHistory: PasswordHistory{
			{Password: "$2a$10$old", ChangedAt: time.Now()},
		},
	}

	fields := user.SnapshotFields()
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "passwordHistory")
	assert.NotContains(t, fields, "historicalLogins")
	assert.Equal(t, "cliente@example.com", fields["email"])
	assert.Contains(t, fields, "deleted")
	assert.Contains(t, fields, "modificationHistory")
}
