package repositories

import (
	"gorm.io/gorm"

	"surfcamp/internal/models"
)

// UserRepository defines data access for users. Every method runs against
// the caller-supplied transaction handle. Lookups return (nil, nil) when no
// row matches; reads only see soft-deleted rows when includeDeleted is true.
type UserRepository interface {
	Create(tx *gorm.DB, user *models.User) error
	GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.User, error)
	GetByEmail(tx *gorm.DB, email string, includeDeleted bool) (*models.User, error)
	Update(tx *gorm.DB, user *models.User) error
	Restore(tx *gorm.DB, id string) error
	SoftDelete(tx *gorm.DB, id string) error
	HardDelete(tx *gorm.DB, id string) error
}

// UserPasswordRepository defines data access for the password rows paired
// 1:1 with users. Same conventions as UserRepository, keyed by the owning
// user's ID.
type UserPasswordRepository interface {
	Create(tx *gorm.DB, password *models.UserPassword) error
	GetByUserID(tx *gorm.DB, userID string, includeDeleted bool) (*models.UserPassword, error)
	Update(tx *gorm.DB, password *models.UserPassword) error
	Restore(tx *gorm.DB, userID string) error
	SoftDelete(tx *gorm.DB, userID string) error
	HardDelete(tx *gorm.DB, userID string) error
}
