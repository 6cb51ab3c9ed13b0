package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/pkg/queryparams"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger("test", "error")
	code := m.Run()
	configslog.SyncLogger()
	os.Exit(code)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Feedback{}))
	return db
}

func seedFeedback(t *testing.T, db *gorm.DB, n int, senderID uuid.UUID) []models.Feedback {
	t.Helper()
	out := make([]models.Feedback, 0, n)
	for i := 0; i < n; i++ {
		fb := models.Feedback{
			SenderID: senderID,
			Affair:   models.FeedbackAffairBug,
			Message:  "mensaje",
		}
		fb.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(&fb).Error)
		out = append(out, fb)
	}
	return out
}

func TestFindAllPaginated(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	sender := uuid.New()
	seedFeedback(t, db, 3, sender)

	params := queryparams.ListParams{Page: 1, PerPage: 2, SortBy: "created_at", OrderBy: "asc"}
	items, total, err := repo.FindAllPaginated(context.Background(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)

	params.Page = 2
	items, total, err = repo.FindAllPaginated(context.Background(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 1)
}

func TestUnknownSortColumnFallsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	seedFeedback(t, db, 2, uuid.New())

	// "message; DROP TABLE" is not in the allowlist; the query must still
	// succeed ordered by created_at.
	params := queryparams.ListParams{Page: 1, PerPage: 10, SortBy: "message; DROP TABLE feedbacks", OrderBy: "asc"}
	items, total, err := repo.FindAllPaginated(context.Background(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestDeletionScopes(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	rows := seedFeedback(t, db, 3, uuid.New())

	actor := uuid.New()
	rows[0].Deleted.MarkDeleted(actor, time.Now().UTC())
	require.NoError(t, db.Save(&rows[0]).Error)

	active, err := repo.Count(context.Background(), NotDeleted)
	require.NoError(t, err)
	assert.EqualValues(t, 2, active)

	deleted, err := repo.Count(context.Background(), OnlyDeleted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	// FindByID keeps resolving deleted rows; admin paths depend on it.
	fetched, err := repo.FindByID(context.Background(), rows[0].ID)
	require.NoError(t, err)
	assert.True(t, fetched.Deleted.IsDeleted)
}

func TestFindByIDUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserFindByEmailIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{
		Email:        "ana@example.com",
		FirstName:    "Ana",
		LastName:     "García",
		PasswordHash: "hash",
		Role:         models.RoleClient,
	}
	require.NoError(t, db.Create(&user).Error)

	found, err := repo.FindByEmail(context.Background(), "ANA@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}
