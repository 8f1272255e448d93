package service

import (
	"fmt"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/database"
	"healthcare-backend/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// seedDoctor creates a doctor user plus profile and returns both with
// the matching principal.
func seedDoctor(t *testing.T, db *gorm.DB, email, name string) (*models.Doctor, auth.Principal) {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Role: models.RoleDoctor}
	require.NoError(t, db.Create(&user).Error)

	doctor := models.Doctor{UserID: user.ID, Name: name, Specialization: "Dermatology"}
	require.NoError(t, db.Create(&doctor).Error)

	return &doctor, auth.Principal{UserID: user.ID, Email: email, Role: models.RoleDoctor}
}

// seedPatient creates a patient user plus profile and returns both with
// the matching principal.
func seedPatient(t *testing.T, db *gorm.DB, email, name string) (*models.Patient, auth.Principal) {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Role: models.RolePatient}
	require.NoError(t, db.Create(&user).Error)

	patient := models.Patient{UserID: user.ID, Name: name}
	require.NoError(t, db.Create(&patient).Error)

	return &patient, auth.Principal{UserID: user.ID, Email: email, Role: models.RolePatient}
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("id").Find(&notifications).Error)
	return notifications
}
