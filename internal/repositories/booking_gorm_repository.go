package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"surfcamp/internal/models"
)

var (
	bookingSearchable = []string{"name", "email", "phone"}
	bookingSortable   = map[string]bool{
		"name": true, "email": true, "phone": true, "date": true,
		"surfing_experience": true, "created_at": true, "updated_at": true,
	}
)

// GORMBookingRepository is a GORM implementation of BookingRepository.
type GORMBookingRepository struct{}

// NewGORMBookingRepository creates a new instance of GORMBookingRepository.
func NewGORMBookingRepository() *GORMBookingRepository {
	return &GORMBookingRepository{}
}

func (r *GORMBookingRepository) Create(tx *gorm.DB, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if err := tx.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *GORMBookingRepository) GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.Booking, error) {
	return r.getOne(tx, includeDeleted, "id = ?", id)
}

func (r *GORMBookingRepository) GetByFileKey(tx *gorm.DB, key string, includeDeleted bool) (*models.Booking, error) {
	return r.getOne(tx, includeDeleted, "national_id_photo_file_key = ?", key)
}

func (r *GORMBookingRepository) getOne(tx *gorm.DB, includeDeleted bool, cond string, arg any) (*models.Booking, error) {
	if includeDeleted {
		tx = tx.Unscoped()
	}
	var booking models.Booking
	if err := tx.First(&booking, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *GORMBookingRepository) List(tx *gorm.DB, q ListQuery) ([]models.Booking, int64, error) {
	scoped, q, err := applyList(tx.Model(&models.Booking{}), q, bookingSearchable, bookingSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	if err := scoped.Limit(q.PageSize).Offset(q.offset()).Find(&bookings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *GORMBookingRepository) Update(tx *gorm.DB, booking *models.Booking) error {
	res := tx.Save(booking)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking with ID %s not found for update", booking.ID)
	}
	return nil
}

func (r *GORMBookingRepository) SoftDelete(tx *gorm.DB, id string) error {
	if err := tx.Delete(&models.Booking{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to soft-delete booking: %w", err)
	}
	return nil
}
