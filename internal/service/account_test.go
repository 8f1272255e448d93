package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/models"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())

	user, err := svc.Register(RegisterRequest{
		Email:           "doc@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		UserType:        models.RoleDoctor,
		Name:            "Smith",
		Specialization:  "Cardiology",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, user.Role)

	var doctor models.Doctor
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&doctor).Error)
	assert.Equal(t, "Cardiology", doctor.Specialization)

	patient, err := svc.Register(RegisterRequest{
		Email:           "pat@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		UserType:        models.RolePatient,
		Name:            "Alice",
	})
	require.NoError(t, err)

	var profile models.Patient
	require.NoError(t, db.Where("user_id = ?", patient.ID).First(&profile).Error)
	assert.Equal(t, "Alice", profile.Name)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())

	_, err := svc.Register(RegisterRequest{
		Email: "a@b.com", Password: "x", ConfirmPassword: "y",
		UserType: models.RolePatient, Name: "A",
	})
	assert.ErrorIs(t, err, ErrValidation, "mismatched passwords")

	_, err = svc.Register(RegisterRequest{
		Email: "a@b.com", Password: "x", ConfirmPassword: "x",
		UserType: "admin", Name: "A",
	})
	assert.ErrorIs(t, err, ErrValidation, "unknown role")

	_, err = svc.Register(RegisterRequest{
		Email: "a@b.com", Password: "x", ConfirmPassword: "x",
		UserType: models.RoleDoctor, Name: "A",
	})
	assert.ErrorIs(t, err, ErrValidation, "doctor without specialization")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())

	req := RegisterRequest{
		Email: "a@b.com", Password: "x", ConfirmPassword: "x",
		UserType: models.RolePatient, Name: "A",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())

	_, err := svc.Register(RegisterRequest{
		Email: "pat@example.com", Password: "secret123", ConfirmPassword: "secret123",
		UserType: models.RolePatient, Name: "Alice",
	})
	require.NoError(t, err)

	user, err := svc.Login("pat@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", user.Email)

	_, err = svc.Login("pat@example.com", "wrong")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestUpdateProfileFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())
	patient, principal := seedPatient(t, db, "pat@example.com", "Alice")

	name := "Alice Brown"
	city := "Springfield"
	history := "asthma"
	dob := "1991-04-23"
	err := svc.UpdateProfile(principal, UpdateProfileRequest{
		Name:           &name,
		City:           &city,
		MedicalHistory: &history,
		DateOfBirth:    &dob,
	})
	require.NoError(t, err)

	var updated models.Patient
	require.NoError(t, db.First(&updated, patient.ID).Error)
	assert.Equal(t, "Alice Brown", updated.Name)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Springfield", *updated.City)
	require.NotNil(t, updated.MedicalHistory)
	assert.Equal(t, "asthma", *updated.MedicalHistory)
	require.NotNil(t, updated.DateOfBirth)
	assert.Equal(t, 1991, updated.DateOfBirth.Year())
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())

	user, err := svc.Register(RegisterRequest{
		Email: "pat@example.com", Password: "oldpass", ConfirmPassword: "oldpass",
		UserType: models.RolePatient, Name: "Alice",
	})
	require.NoError(t, err)
	principal := auth.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}

	wrong := "nope"
	next := "newpass"
	err = svc.UpdateProfile(principal, UpdateProfileRequest{
		CurrentPassword: &wrong,
		NewPassword:     &next,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login("pat@example.com", "oldpass")
	require.NoError(t, err, "password must be unchanged after a failed attempt")

	current := "oldpass"
	err = svc.UpdateProfile(principal, UpdateProfileRequest{
		CurrentPassword: &current,
		NewPassword:     &next,
	})
	require.NoError(t, err)

	_, err = svc.Login("pat@example.com", "newpass")
	assert.NoError(t, err)
}

func TestListDoctorsFiltersBySpecialization(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())
	seedDoctor(t, db, "derm@example.com", "Smith")
	cardio := models.User{Email: "cardio@example.com", PasswordHash: "x", Role: models.RoleDoctor}
	require.NoError(t, db.Create(&cardio).Error)
	require.NoError(t, db.Create(&models.Doctor{UserID: cardio.ID, Name: "Jones", Specialization: "Cardiology"}).Error)

	all, err := svc.ListDoctors("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.ListDoctors("cardio")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Jones", matched[0].Name)
}
