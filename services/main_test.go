package services

import (
	"context"
	"os"
	"testing"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.Contact{},
		&models.Feedback{},
		&models.Review{},
		&models.ProfileVisit{},
	))
	return db
}

const testPassword = "secreto123"

func newTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		FirstName:    "Nombre",
		LastName:     "Apellido",
		PasswordHash: string(hash),
		Role:         role,
	}
	if role == models.RoleProf {
		profession := "pediatra"
		user.Profession = &profession
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newGuard(db *gorm.DB) (*ReferentialGuard, repositories.IUserRepository) {
	userRepo := repositories.NewUserRepository(db)
	return NewReferentialGuard(userRepo), userRepo
}

func testCtx() context.Context { return context.Background() }
