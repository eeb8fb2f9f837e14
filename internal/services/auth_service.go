package services

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
)

// AuthService handles the credential lifecycle: sign-up, sign-in, email and
// password changes, deactivation and permanent deletion. Every operation
// runs inside the caller-supplied transaction so a crash mid-sequence leaves
// no partial state; in particular a User and its UserPassword are always
// created, restored, soft-deleted or hard-deleted together.
type AuthService struct {
	users     repositories.UserRepository
	passwords repositories.UserPasswordRepository
	tokens    *TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, passwords repositories.UserPasswordRepository, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, passwords: passwords, tokens: tokens}
}

// SignUpInput is the profile plus plaintext password for registration.
type SignUpInput struct {
	FirstName string
	LastName  *string
	Email     string
	Password  string
}

// SignUp registers a user and returns a session token. The email lookup
// includes soft-deleted rows because the unique index is unconditional: a
// live match is a conflict, while a soft-deleted match is reactivated in
// place (profile and password overwritten) instead of inserting a duplicate
// that the index would reject.
func (s *AuthService) SignUp(tx *gorm.DB, in SignUpInput) (string, error) {
	existing, err := s.users.GetByEmail(tx, in.Email, true)
	if err != nil {
		return "", apperrors.NewUpstream("look up user by email", err)
	}
	if existing != nil && !existing.DeletedAt.Valid {
		return "", apperrors.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.NewUpstream("hash password", err)
	}

	if existing != nil {
		// Reactivation: restore the pair and overwrite profile and hash.
		if err := s.restorePair(tx, existing.ID); err != nil {
			return "", err
		}
		existing.DeletedAt = gorm.DeletedAt{}
		existing.FirstName = in.FirstName
		existing.LastName = in.LastName
		if err := s.users.Update(tx, existing); err != nil {
			return "", apperrors.NewUpstream("update user", err)
		}
		if err := s.setHash(tx, existing.ID, string(hash)); err != nil {
			return "", err
		}
		return s.issue(existing.ID)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	if err := s.users.Create(tx, user); err != nil {
		return "", apperrors.NewUpstream("create user", err)
	}
	if err := s.passwords.Create(tx, &models.UserPassword{UserID: user.ID, Hash: string(hash)}); err != nil {
		return "", apperrors.NewUpstream("create user password", err)
	}
	return s.issue(user.ID)
}

// SignIn authenticates by email and password and returns a session token.
// The lookup includes soft-deleted rows so that a deactivated account comes
// back to life on a successful sign-in: both User and UserPassword are
// restored as a side effect.
func (s *AuthService) SignIn(tx *gorm.DB, email, password string) (string, error) {
	user, err := s.users.GetByEmail(tx, email, true)
	if err != nil {
		return "", apperrors.NewUpstream("look up user by email", err)
	}
	if user == nil {
		return "", apperrors.ErrUserNotFound
	}

	stored, err := s.passwords.GetByUserID(tx, user.ID, true)
	if err != nil {
		return "", apperrors.NewUpstream("look up user password", err)
	}
	if stored == nil {
		return "", apperrors.ErrPasswordNotSet
	}

	// bcrypt's comparison is constant-time at the hashing-library level.
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Hash), []byte(password)); err != nil {
		return "", apperrors.ErrWrongCredentials
	}

	if user.DeletedAt.Valid {
		if err := s.restorePair(tx, user.ID); err != nil {
			return "", err
		}
	}

	return s.issue(user.ID)
}

// UpdateEmail changes the caller's email. The caller's own unchanged value
// is not a conflict; an email held by a different non-deleted user is.
func (s *AuthService) UpdateEmail(tx *gorm.DB, userID, newEmail string) error {
	user, err := s.users.GetByID(tx, userID, false)
	if err != nil {
		return apperrors.NewUpstream("look up user", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if user.Email == newEmail {
		return apperrors.ErrEmailAlreadyYours
	}

	other, err := s.users.GetByEmail(tx, newEmail, false)
	if err != nil {
		return apperrors.NewUpstream("look up user by email", err)
	}
	if other != nil && other.ID != user.ID {
		return apperrors.ErrEmailNotAvailable
	}

	user.Email = newEmail
	if err := s.users.Update(tx, user); err != nil {
		return apperrors.NewUpstream("update user", err)
	}
	return nil
}

// UpdatePassword re-hashes and stores a new password after verifying the
// old one. A new password equal to the old one is rejected.
func (s *AuthService) UpdatePassword(tx *gorm.DB, userID, oldPassword, newPassword string) error {
	stored, err := s.passwords.GetByUserID(tx, userID, false)
	if err != nil {
		return apperrors.NewUpstream("look up user password", err)
	}
	if stored == nil {
		return apperrors.ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.Hash), []byte(oldPassword)); err != nil {
		return apperrors.ErrWrongPassword
	}
	if newPassword == oldPassword {
		return apperrors.ErrPasswordIdentical
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewUpstream("hash password", err)
	}
	stored.Hash = string(hash)
	if err := s.passwords.Update(tx, stored); err != nil {
		return apperrors.NewUpstream("update user password", err)
	}
	return nil
}

// Deactivate soft-deletes the User and its UserPassword. Calling it on an
// already-deactivated user is a no-op, so the operation is idempotent.
func (s *AuthService) Deactivate(tx *gorm.DB, userID string) error {
	user, err := s.users.GetByID(tx, userID, true)
	if err != nil {
		return apperrors.NewUpstream("look up user", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if user.DeletedAt.Valid {
		return nil
	}

	if err := s.users.SoftDelete(tx, userID); err != nil {
		return apperrors.NewUpstream("soft-delete user", err)
	}
	if err := s.passwords.SoftDelete(tx, userID); err != nil {
		return apperrors.NewUpstream("soft-delete user password", err)
	}
	return nil
}

// Delete hard-deletes the User and its UserPassword. Irreversible.
func (s *AuthService) Delete(tx *gorm.DB, userID string) error {
	user, err := s.users.GetByID(tx, userID, true)
	if err != nil {
		return apperrors.NewUpstream("look up user", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if err := s.users.HardDelete(tx, userID); err != nil {
		return apperrors.NewUpstream("hard-delete user", err)
	}
	if err := s.passwords.HardDelete(tx, userID); err != nil {
		return apperrors.NewUpstream("hard-delete user password", err)
	}
	return nil
}

func (s *AuthService) restorePair(tx *gorm.DB, userID string) error {
	if err := s.users.Restore(tx, userID); err != nil {
		return apperrors.NewUpstream("restore user", err)
	}
	if err := s.passwords.Restore(tx, userID); err != nil {
		return apperrors.NewUpstream("restore user password", err)
	}
	return nil
}

func (s *AuthService) setHash(tx *gorm.DB, userID, hash string) error {
	stored, err := s.passwords.GetByUserID(tx, userID, false)
	if err != nil {
		return apperrors.NewUpstream("look up user password", err)
	}
	if stored == nil {
		return apperrors.ErrPasswordNotSet
	}
	stored.Hash = hash
	if err := s.passwords.Update(tx, stored); err != nil {
		return apperrors.NewUpstream("update user password", err)
	}
	return nil
}

func (s *AuthService) issue(userID string) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", apperrors.NewUpstream("issue token", err)
	}
	return token, nil
}
