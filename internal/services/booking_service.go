package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
	"surfcamp/pkg/storage"
)

// BookingService handles the reservation CRUD behind the booking form.
// Country and surfboard references are weak at the storage layer, so this is
// the one place their integrity is enforced: create and update resolve both
// before writing. Booking lifecycle events are published to the broker
// best-effort; a publish failure never fails the request.
type BookingService struct {
	bookings   repositories.BookingRepository
	countries  repositories.CountryRepository
	surfboards repositories.SurfboardRepository
	files      storage.FileStorage
	events     EventPublisher
	log        *zap.Logger
}

// NewBookingService creates a new BookingService. events and files may be
// nil, which disables event publication and URL derivation respectively.
func NewBookingService(
	bookings repositories.BookingRepository,
	countries repositories.CountryRepository,
	surfboards repositories.SurfboardRepository,
	files storage.FileStorage,
	events EventPublisher,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		countries:  countries,
		surfboards: surfboards,
		files:      files,
		events:     events,
		log:        log,
	}
}

// BookingInput carries the validated booking fields. FileKey is the opaque
// object-storage key of the uploaded national-ID photo; on update an empty
// FileKey keeps the stored one.
type BookingInput struct {
	Name              string
	Email             string
	Phone             string
	CountryID         string
	SurfingExperience int
	Date              time.Time
	SurfboardID       string
	FileKey           string
}

// Create persists a new booking after resolving both weak references and
// checking the file-key uniqueness against deleted rows as well.
func (s *BookingService) Create(ctx context.Context, tx *gorm.DB, in BookingInput) (*models.Booking, error) {
	if err := s.resolveRefs(tx, in.CountryID, in.SurfboardID); err != nil {
		return nil, err
	}

	existing, err := s.bookings.GetByFileKey(tx, in.FileKey, true)
	if err != nil {
		return nil, apperrors.NewUpstream("look up booking by file key", err)
	}
	if existing != nil {
		return nil, apperrors.ErrFileKeyTaken
	}

	booking := &models.Booking{
		Name:                   in.Name,
		Email:                  in.Email,
		Phone:                  in.Phone,
		CountryID:              in.CountryID,
		SurfingExperience:      in.SurfingExperience,
		Date:                   in.Date,
		SurfboardID:            in.SurfboardID,
		NationalIDPhotoFileKey: in.FileKey,
	}
	if err := s.bookings.Create(tx, booking); err != nil {
		return nil, apperrors.NewUpstream("create booking", err)
	}

	s.publish("booking.created", booking)
	return s.decorate(booking), nil
}

// Get returns one booking by ID with its derived photo URL.
func (s *BookingService) Get(tx *gorm.DB, id string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(tx, id, false)
	if err != nil {
		return nil, apperrors.NewUpstream("look up booking", err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}
	return s.decorate(booking), nil
}

// List returns a page of bookings plus the total count.
func (s *BookingService) List(tx *gorm.DB, q repositories.ListQuery) ([]models.Booking, int64, error) {
	bookings, total, err := s.bookings.List(tx, q)
	if err != nil {
		return nil, 0, apperrors.NewUpstream("list bookings", err)
	}
	for i := range bookings {
		s.decorate(&bookings[i])
	}
	return bookings, total, nil
}

// Update replaces a booking's fields. When the upload key changed, the
// previous object is deleted from storage after the row update succeeds.
// That cleanup is best-effort: it is not coupled to the transaction, and a
// failure is logged rather than surfaced.
func (s *BookingService) Update(ctx context.Context, tx *gorm.DB, id string, in BookingInput) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(tx, id, false)
	if err != nil {
		return nil, apperrors.NewUpstream("look up booking", err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}

	if err := s.resolveRefs(tx, in.CountryID, in.SurfboardID); err != nil {
		return nil, err
	}

	oldKey := ""
	if in.FileKey != "" && in.FileKey != booking.NationalIDPhotoFileKey {
		other, err := s.bookings.GetByFileKey(tx, in.FileKey, true)
		if err != nil {
			return nil, apperrors.NewUpstream("look up booking by file key", err)
		}
		if other != nil && other.ID != booking.ID {
			return nil, apperrors.ErrFileKeyTaken
		}
		oldKey = booking.NationalIDPhotoFileKey
		booking.NationalIDPhotoFileKey = in.FileKey
	}

	booking.Name = in.Name
	booking.Email = in.Email
	booking.Phone = in.Phone
	booking.CountryID = in.CountryID
	booking.SurfingExperience = in.SurfingExperience
	booking.Date = in.Date
	booking.SurfboardID = in.SurfboardID

	if err := s.bookings.Update(tx, booking); err != nil {
		return nil, apperrors.NewUpstream("update booking", err)
	}

	if oldKey != "" && s.files != nil {
		if err := s.files.Delete(ctx, oldKey); err != nil {
			s.log.Warn("failed to delete replaced national-id photo",
				zap.String("booking_id", booking.ID),
				zap.String("file_key", oldKey),
				zap.Error(err))
		}
	}

	s.publish("booking.updated", booking)
	return s.decorate(booking), nil
}

// Destroy soft-deletes a booking. The stored object is kept: the row can be
// restored, and its key stays blocked by the unconditional unique index.
func (s *BookingService) Destroy(tx *gorm.DB, id string) error {
	booking, err := s.bookings.GetByID(tx, id, false)
	if err != nil {
		return apperrors.NewUpstream("look up booking", err)
	}
	if booking == nil {
		return apperrors.ErrBookingNotFound
	}

	if err := s.bookings.SoftDelete(tx, id); err != nil {
		return apperrors.NewUpstream("soft-delete booking", err)
	}

	s.publish("booking.cancelled", booking)
	return nil
}

func (s *BookingService) resolveRefs(tx *gorm.DB, countryID, surfboardID string) error {
	country, err := s.countries.GetByID(tx, countryID, false)
	if err != nil {
		return apperrors.NewUpstream("look up country", err)
	}
	if country == nil {
		return apperrors.ErrCountryNotFound
	}

	surfboard, err := s.surfboards.GetByID(tx, surfboardID, false)
	if err != nil {
		return apperrors.NewUpstream("look up surfboard", err)
	}
	if surfboard == nil {
		return apperrors.ErrSurfboardNotFound
	}
	return nil
}

func (s *BookingService) decorate(b *models.Booking) *models.Booking {
	if s.files != nil && b.NationalIDPhotoFileKey != "" {
		b.NationalIDPhotoURL = s.files.URL(b.NationalIDPhotoFileKey)
	}
	return b
}

func (s *BookingService) publish(event string, b *models.Booking) {
	if s.events == nil {
		return
	}
	payload := map[string]any{
		"booking_id": b.ID,
		"name":       b.Name,
		"email":      b.Email,
		"date":       b.Date,
	}
	if err := s.events.Publish(event, payload); err != nil {
		s.log.Warn("failed to publish booking event", zap.String("event", event), zap.Error(err))
	}
}
