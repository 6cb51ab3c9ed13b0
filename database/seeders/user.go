package seeders

import (
	"errors"
	"os"
	"strings"

	"citalink.app/configs/configslog"
	"citalink.app/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAdminEmail = "admin@citalink.app"

// SeedAdminUser ensures one admin account exists. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD; without a password nothing is created.
func SeedAdminUser(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		configslog.SLog.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.User
	result := db.Where("lower(email) = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Admin user %s already exists, skipping", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Failed to check for admin user", zap.Error(result.Error))
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Failed to hash admin password", zap.Error(err))
		return err
	}

	admin := models.User{
		Email:        email,
		FirstName:    "Admin",
		LastName:     "CitaLink",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsVerified:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Failed to create admin user", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Admin user created: %s (%s)", admin.Email, admin.ID)
	return nil
}
