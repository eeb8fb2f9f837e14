package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"surfcamp/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct{}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository() *GORMUserRepository {
	return &GORMUserRepository{}
}

func (r *GORMUserRepository) Create(tx *gorm.DB, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := tx.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GORMUserRepository) GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.User, error) {
	return r.getOne(tx, includeDeleted, "id = ?", id)
}

func (r *GORMUserRepository) GetByEmail(tx *gorm.DB, email string, includeDeleted bool) (*models.User, error) {
	return r.getOne(tx, includeDeleted, "email = ?", email)
}

func (r *GORMUserRepository) getOne(tx *gorm.DB, includeDeleted bool, cond string, arg any) (*models.User, error) {
	if includeDeleted {
		tx = tx.Unscoped()
	}
	var user models.User
	if err := tx.First(&user, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *GORMUserRepository) Update(tx *gorm.DB, user *models.User) error {
	res := tx.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for update", user.ID)
	}
	return nil
}

// Restore clears deleted_at so a soft-deleted user becomes visible again.
func (r *GORMUserRepository) Restore(tx *gorm.DB, id string) error {
	if err := tx.Unscoped().Model(&models.User{}).Where("id = ?", id).Update("deleted_at", nil).Error; err != nil {
		return fmt.Errorf("failed to restore user: %w", err)
	}
	return nil
}

func (r *GORMUserRepository) SoftDelete(tx *gorm.DB, id string) error {
	if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to soft-delete user: %w", err)
	}
	return nil
}

func (r *GORMUserRepository) HardDelete(tx *gorm.DB, id string) error {
	if err := tx.Unscoped().Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to hard-delete user: %w", err)
	}
	return nil
}

// GORMUserPasswordRepository is a GORM implementation of
// UserPasswordRepository.
type GORMUserPasswordRepository struct{}

// NewGORMUserPasswordRepository creates a new instance of
// GORMUserPasswordRepository.
func NewGORMUserPasswordRepository() *GORMUserPasswordRepository {
	return &GORMUserPasswordRepository{}
}

func (r *GORMUserPasswordRepository) Create(tx *gorm.DB, password *models.UserPassword) error {
	if password.ID == "" {
		password.ID = uuid.New().String()
	}
	if err := tx.Create(password).Error; err != nil {
		return fmt.Errorf("failed to create user password: %w", err)
	}
	return nil
}

func (r *GORMUserPasswordRepository) GetByUserID(tx *gorm.DB, userID string, includeDeleted bool) (*models.UserPassword, error) {
	if includeDeleted {
		tx = tx.Unscoped()
	}
	var password models.UserPassword
	if err := tx.First(&password, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user password: %w", err)
	}
	return &password, nil
}

func (r *GORMUserPasswordRepository) Update(tx *gorm.DB, password *models.UserPassword) error {
	res := tx.Save(password)
	if res.Error != nil {
		return fmt.Errorf("failed to update user password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user password with ID %s not found for update", password.ID)
	}
	return nil
}

func (r *GORMUserPasswordRepository) Restore(tx *gorm.DB, userID string) error {
	if err := tx.Unscoped().Model(&models.UserPassword{}).Where("user_id = ?", userID).Update("deleted_at", nil).Error; err != nil {
		return fmt.Errorf("failed to restore user password: %w", err)
	}
	return nil
}

func (r *GORMUserPasswordRepository) SoftDelete(tx *gorm.DB, userID string) error {
	if err := tx.Delete(&models.UserPassword{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to soft-delete user password: %w", err)
	}
	return nil
}

func (r *GORMUserPasswordRepository) HardDelete(tx *gorm.DB, userID string) error {
	if err := tx.Unscoped().Delete(&models.UserPassword{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to hard-delete user password: %w", err)
	}
	return nil
}
