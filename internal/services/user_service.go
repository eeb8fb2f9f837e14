package services

import (
	"gorm.io/gorm"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
)

// UserService handles profile reads and updates for the authenticated user.
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Me returns the caller's profile.
func (s *UserService) Me(tx *gorm.DB, userID string) (*models.User, error) {
	user, err := s.users.GetByID(tx, userID, false)
	if err != nil {
		return nil, apperrors.NewUpstream("look up user", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile replaces the caller's first and last name.
func (s *UserService) UpdateProfile(tx *gorm.DB, userID, firstName string, lastName *string) (*models.User, error) {
	user, err := s.Me(tx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	if err := s.users.Update(tx, user); err != nil {
		return nil, apperrors.NewUpstream("update user", err)
	}
	return user, nil
}
