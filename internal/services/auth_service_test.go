package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
	"surfcamp/internal/services"
)

func newAuthService() *services.AuthService {
	tokens := services.NewTokenManager("test_jwt_secret", time.Hour)
	return services.NewAuthService(
		repositories.NewGORMUserRepository(),
		repositories.NewGORMUserPasswordRepository(),
		tokens,
	)
}

func signUp(t *testing.T, db *gorm.DB, svc *services.AuthService, email, password string) string {
	t.Helper()
	token, err := svc.SignUp(db, services.SignUpInput{
		FirstName: "Kai",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return token
}

func userByEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := repositories.NewGORMUserRepository().GetByEmail(db, email, true)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestAuthService_SignUp(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")

	// The User and its UserPassword are created together.
	user := userByEmail(t, db, "kai@example.com")
	pw, err := repositories.NewGORMUserPasswordRepository().GetByUserID(db, user.ID, false)
	require.NoError(t, err)
	require.NotNil(t, pw)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pw.Hash), []byte("password123")))
}

func TestAuthService_SignUp_Conflict(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")

	_, err := svc.SignUp(db, services.SignUpInput{
		FirstName: "Other",
		Email:     "kai@example.com",
		Password:  "different456",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	assert.True(t, apperrors.IsConflict(err))

	// No duplicate row was created.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "kai@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_SignUp_ReactivatesSoftDeleted(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")
	user := userByEmail(t, db, "kai@example.com")
	require.NoError(t, svc.Deactivate(db, user.ID))

	// Signing up again with the same email restores the pair in place
	// instead of inserting a duplicate the unique index would reject.
	token, err := svc.SignUp(db, services.SignUpInput{
		FirstName: "Kai",
		Email:     "kai@example.com",
		Password:  "newpassword456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	restored := userByEmail(t, db, "kai@example.com")
	assert.Equal(t, user.ID, restored.ID)
	assert.False(t, restored.DeletedAt.Valid)

	_, err = svc.SignIn(db, "kai@example.com", "newpassword456")
	assert.NoError(t, err)
}

func TestAuthService_SignIn(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()
	tokens := services.NewTokenManager("test_jwt_secret", time.Hour)

	signUp(t, db, svc, "kai@example.com", "password123")
	user := userByEmail(t, db, "kai@example.com")

	token, err := svc.SignIn(db, "kai@example.com", "password123")
	require.NoError(t, err)

	// The token embeds the user ID.
	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")

	token, err := svc.SignIn(db, "kai@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrWrongCredentials)
	assert.Empty(t, token)

	// Nothing was mutated: the account is still live and usable.
	_, err = svc.SignIn(db, "kai@example.com", "password123")
	assert.NoError(t, err)
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	_, err := svc.SignIn(db, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthService_SignIn_RestoresDeactivatedAccount(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")
	user := userByEmail(t, db, "kai@example.com")
	require.NoError(t, svc.Deactivate(db, user.ID))

	// Deactivated: both rows carry deleted_at.
	assert.True(t, userByEmail(t, db, "kai@example.com").DeletedAt.Valid)

	_, err := svc.SignIn(db, "kai@example.com", "password123")
	require.NoError(t, err)

	// Successful sign-in restored both User and UserPassword.
	assert.False(t, userByEmail(t, db, "kai@example.com").DeletedAt.Valid)
	pw, err := repositories.NewGORMUserPasswordRepository().GetByUserID(db, user.ID, false)
	require.NoError(t, err)
	assert.NotNil(t, pw)
}

func TestAuthService_UpdateEmail(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")
	signUp(t, db, svc, "other@example.com", "password123")
	user := userByEmail(t, db, "kai@example.com")

	// Same value as the caller's current email.
	err := svc.UpdateEmail(db, user.ID, "kai@example.com")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyYours)

	// Email held by a different non-deleted user.
	err = svc.UpdateEmail(db, user.ID, "other@example.com")
	assert.ErrorIs(t, err, apperrors.ErrEmailNotAvailable)

	require.NoError(t, svc.UpdateEmail(db, user.ID, "kai.new@example.com"))
	assert.Equal(t, user.ID, userByEmail(t, db, "kai.new@example.com").ID)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")
	user := userByEmail(t, db, "kai@example.com")

	err := svc.UpdatePassword(db, user.ID, "wrongold", "newpassword456")
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	err = svc.UpdatePassword(db, user.ID, "password123", "password123")
	assert.ErrorIs(t, err, apperrors.ErrPasswordIdentical)

	require.NoError(t, svc.UpdatePassword(db, user.ID, "password123", "newpassword456"))
	_, err = svc.SignIn(db, "kai@example.com", "newpassword456")
	assert.NoError(t, err)
}

func TestAuthService_Deactivate_Idempotent(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")
	user := userByEmail(t, db, "kai@example.com")

	require.NoError(t, svc.Deactivate(db, user.ID))
	// Second call is a no-op, not an error.
	require.NoError(t, svc.Deactivate(db, user.ID))

	assert.True(t, userByEmail(t, db, "kai@example.com").DeletedAt.Valid)
}

func TestAuthService_Delete_RemovesBothRows(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService()

	signUp(t, db, svc, "kai@example.com", "password123")
	user := userByEmail(t, db, "kai@example.com")

	require.NoError(t, svc.Delete(db, user.ID))

	gone, err := repositories.NewGORMUserRepository().GetByEmail(db, "kai@example.com", true)
	require.NoError(t, err)
	assert.Nil(t, gone)
	pw, err := repositories.NewGORMUserPasswordRepository().GetByUserID(db, user.ID, true)
	require.NoError(t, err)
	assert.Nil(t, pw)
}
