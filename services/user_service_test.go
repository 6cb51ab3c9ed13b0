package services

import (
	"encoding/json"
	"testing"

	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (IUserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	guard, userRepo := newGuard(db)
	return NewUserService(userRepo, guard), db
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService(t)

	valid := RegisterUserInput{
		Email:     "Ana.Garcia@Example.com",
		FirstName: "Ana",
		LastName:  "García",
		Password:  "secreto123",
		Role:      models.RoleClient,
	}

	t.Run("normalizes email", func(t *testing.T) {
		user, err := svc.Register(testCtx(), valid)
		require.NoError(t, err)
		assert.Equal(t, "ana.garcia@example.com", user.Email)
		assert.Empty(t, user.ModificationHistory)
		assert.False(t, user.Deleted.IsDeleted)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(testCtx(), valid)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("malformed email", func(t *testing.T) {
		input := valid
		input.Email = "no-es-un-email"
		_, err := svc.Register(testCtx(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("short password", func(t *testing.T) {
		input := valid
		input.Email = "otra@example.com"
		input.Password = "corta"
		_, err := svc.Register(testCtx(), input)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("prof requires profession", func(t *testing.T) {
		input := valid
		input.Email = "prof@example.com"
		input.Role = models.RoleProf
		input.Profession = nil
		_, err := svc.Register(testCtx(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("client must not declare profession", func(t *testing.T) {
		input := valid
		input.Email = "cliente2@example.com"
		profession := "pediatra"
		input.Profession = &profession
		_, err := svc.Register(testCtx(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLoginBookkeeping(t *testing.T) {
	svc, db := newUserService(t)
	user := newTestUser(t, db, "cliente@example.com", models.RoleClient)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(testCtx(), LoginInput{Email: user.Email, Password: "equivocada"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(testCtx(), LoginInput{Email: "nadie@example.com", Password: testPassword})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("successful login updates counters and ring", func(t *testing.T) {
		logged, err := svc.Login(testCtx(), LoginInput{
			Email:    user.Email,
			Password: testPassword,
			Device:   "Firefox",
			IP:       "10.0.0.7",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, logged.TotalLoginCount)
		require.NotNil(t, logged.LastLogin)
		require.Len(t, logged.HistoricalLogins, 1)
		assert.Equal(t, "Firefox", logged.HistoricalLogins[0].Device)
		assert.Equal(t, "10.0.0.7", logged.HistoricalLogins[0].IP)
	})

	t.Run("missing device metadata gets placeholders", func(t *testing.T) {
		logged, err := svc.Login(testCtx(), LoginInput{Email: user.Email, Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "Dispositivo desconocido", logged.HistoricalLogins[0].Device)
		assert.Equal(t, "IP desconocida", logged.HistoricalLogins[0].IP)
	})

	t.Run("ring caps at five, newest first", func(t *testing.T) {
		var last *models.User
		for i := 0; i < models.MaxLoginHistory+2; i++ {
			logged, err := svc.Login(testCtx(), LoginInput{
				Email:    user.Email,
				Password: testPassword,
				Device:   "Chrome",
			})
			require.NoError(t, err)
			last = logged
		}
		require.Len(t, last.HistoricalLogins, models.MaxLoginHistory)
		assert.Equal(t, "Chrome", last.HistoricalLogins[0].Device)
		assert.Equal(t, models.MaxLoginHistory+2+2, last.TotalLoginCount,
			"the counter keeps growing past the ring window")
	})
}

func TestLoginRejectsSuspendedAndDeleted(t *testing.T) {
	svc, db := newUserService(t)

	suspended := newTestUser(t, db, "suspendido@example.com", models.RoleClient)
	require.NoError(t, db.Model(suspended).Update("is_suspended", true).Error)
	_, err := svc.Login(testCtx(), LoginInput{Email: suspended.Email, Password: testPassword})
	assert.ErrorIs(t, err, ErrUserSuspended)

	deleted := newTestUser(t, db, "borrado@example.com", models.RoleClient)
	admin := newTestUser(t, db, "admin@example.com", models.RoleAdmin)
	_, err = svc.DeleteUser(testCtx(), deleted.ID, admin.ID)
	require.NoError(t, err)

	// A deleted account is indistinguishable from a wrong password.
	_, err = svc.Login(testCtx(), LoginInput{Email: deleted.Email, Password: testPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordChangeKeepsHistory(t *testing.T) {
	svc, db := newUserService(t)
	user := newTestUser(t, db, "cliente@example.com", models.RoleClient)
	priorHash := user.PasswordHash

	newPassword := "nuevosecreto1"
	updated, err := svc.UpdateUser(testCtx(), user.ID, user.ID, UserPatch{Password: &newPassword})
	require.NoError(t, err)

	require.Len(t, updated.PasswordHistory, 1)
	assert.Equal(t, priorHash, updated.PasswordHistory[0].Password, "the superseded hash is kept, never a plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPassword)))

	// old_data must not carry password material.
	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(updated.OldData, &snapshot))
	assert.NotContains(t, snapshot, "password")
	assert.NotContains(t, snapshot, "passwordHistory")

	require.Len(t, updated.ModificationHistory, 1)
	assert.Equal(t, user.ID, updated.ModificationHistory[0].UserID)
}

func TestUpdateUserEmailUniqueness(t *testing.T) {
	svc, db := newUserService(t)
	ana := newTestUser(t, db, "ana@example.com", models.RoleClient)
	newTestUser(t, db, "luisa@example.com", models.RoleClient)

	taken := "Luisa@Example.com"
	_, err := svc.UpdateUser(testCtx(), ana.ID, ana.ID, UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting one's own address is not a collision.
	own := "Ana@Example.com"
	updated, err := svc.UpdateUser(testCtx(), ana.ID, ana.ID, UserPatch{Email: &own})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", updated.Email)
}

func TestSuspensionSweep(t *testing.T) {
	svc, db := newUserService(t)

	clean := newTestUser(t, db, "limpio@example.com", models.RoleClient)
	struck := newTestUser(t, db, "castigado@example.com", models.RoleClient)
	require.NoError(t, db.Model(struck).Update("strikes", models.SuspensionStrikeThreshold).Error)

	count, err := svc.SuspendOverdueUsers(testCtx())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var suspendedRow models.User
	require.NoError(t, db.First(&suspendedRow, "id = ?", struck.ID).Error)
	assert.True(t, suspendedRow.IsSuspended)

	var cleanRow models.User
	require.NoError(t, db.First(&cleanRow, "id = ?", clean.ID).Error)
	assert.False(t, cleanRow.IsSuspended)

	// The sweep is idempotent across runs.
	count, err = svc.SuspendOverdueUsers(testCtx())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeletedUsersListing(t *testing.T) {
	svc, db := newUserService(t)
	active := newTestUser(t, db, "activo@example.com", models.RoleClient)
	gone := newTestUser(t, db, "borrado@example.com", models.RoleClient)
	admin := newTestUser(t, db, "admin@example.com", models.RoleAdmin)

	transitioned, err := svc.DeleteUser(testCtx(), gone.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, transitioned)

	deleted, err := svc.GetAllDeletedUsers(testCtx(), queryparams.DefaultListParams("created_at"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted.Total)
	items := deleted.Items.([]models.User)
	require.Len(t, items, 1)
	assert.Equal(t, gone.ID, items[0].ID)

	activeList, err := svc.GetAllUsers(testCtx(), queryparams.DefaultListParams("created_at"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, activeList.Total)

	// The deleted account is still readable by id, envelope intact.
	fetched, err := svc.GetUserByID(testCtx(), gone.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Deleted.IsDeleted)
	assert.Equal(t, admin.ID, *fetched.Deleted.DeletedBy)
	_ = active
}
