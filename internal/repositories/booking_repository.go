package repositories

import (
	"gorm.io/gorm"

	"surfcamp/internal/models"
)

// BookingRepository defines data access for bookings. GetByFileKey backs the
// soft-delete-aware uniqueness check on the national-ID photo key.
type BookingRepository interface {
	Create(tx *gorm.DB, booking *models.Booking) error
	GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.Booking, error)
	GetByFileKey(tx *gorm.DB, key string, includeDeleted bool) (*models.Booking, error)
	List(tx *gorm.DB, q ListQuery) ([]models.Booking, int64, error)
	Update(tx *gorm.DB, booking *models.Booking) error
	SoftDelete(tx *gorm.DB, id string) error
}
