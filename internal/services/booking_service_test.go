package services_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
	"surfcamp/internal/services"
)

// fakeFileStorage records deletions and derives URLs like the real delegate.
type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) Upload(context.Context, string, io.Reader, int64, string) error {
	return nil
}

func (f *fakeFileStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeFileStorage) URL(key string) string { return "https://files.test/" + key }

type bookingFixture struct {
	db        *gorm.DB
	svc       *services.BookingService
	files     *fakeFileStorage
	events    *MockEventPublisher
	country   *models.Country
	surfboard *models.Surfboard
}

func setupBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	db := setupDB(t)

	country := &models.Country{Name: "Indonesia", Code: "ID", DialCode: "+62"}
	require.NoError(t, repositories.NewGORMCountryRepository().Create(db, country))
	surfboard := &models.Surfboard{Name: "Longboard"}
	require.NoError(t, repositories.NewGORMSurfboardRepository().Create(db, surfboard))

	files := &fakeFileStorage{}
	events := &MockEventPublisher{}
	svc := services.NewBookingService(
		repositories.NewGORMBookingRepository(),
		repositories.NewGORMCountryRepository(),
		repositories.NewGORMSurfboardRepository(),
		files,
		events,
		zap.NewNop(),
	)
	return &bookingFixture{db: db, svc: svc, files: files, events: events, country: country, surfboard: surfboard}
}

func (f *bookingFixture) input(fileKey string) services.BookingInput {
	return services.BookingInput{
		Name:              "Made Wirawan",
		Email:             "made@example.com",
		Phone:             "+62811234567",
		CountryID:         f.country.ID,
		SurfingExperience: 4,
		Date:              time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		SurfboardID:       f.surfboard.ID,
		FileKey:           fileKey,
	}
}

func TestBookingService_CreateAndGet_RoundTrip(t *testing.T) {
	f := setupBookingFixture(t)
	f.events.On("Publish", "booking.created", mock.Anything).Return(nil).Once()

	in := f.input("bookings/national-id/key-1.jpg")
	created, err := f.svc.Create(context.Background(), f.db, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := f.svc.Get(f.db, created.ID)
	require.NoError(t, err)

	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.Phone, got.Phone)
	assert.Equal(t, in.CountryID, got.CountryID)
	assert.Equal(t, in.SurfingExperience, got.SurfingExperience)
	assert.True(t, got.Date.Equal(in.Date))
	assert.Equal(t, in.SurfboardID, got.SurfboardID)
	assert.Equal(t, in.FileKey, got.NationalIDPhotoFileKey)
	assert.Equal(t, "https://files.test/"+in.FileKey, got.NationalIDPhotoURL)
	f.events.AssertExpectations(t)
}

func TestBookingService_Create_CountryNotFound(t *testing.T) {
	f := setupBookingFixture(t)

	in := f.input("bookings/national-id/key-1.jpg")
	in.CountryID = "00000000-0000-0000-0000-000000000000"
	_, err := f.svc.Create(context.Background(), f.db, in)
	assert.ErrorIs(t, err, apperrors.ErrCountryNotFound)

	// No booking row was persisted.
	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestBookingService_Create_SurfboardNotFound(t *testing.T) {
	f := setupBookingFixture(t)

	in := f.input("bookings/national-id/key-1.jpg")
	in.SurfboardID = "00000000-0000-0000-0000-000000000000"
	_, err := f.svc.Create(context.Background(), f.db, in)
	assert.ErrorIs(t, err, apperrors.ErrSurfboardNotFound)
}

func TestBookingService_Create_FileKeyTaken(t *testing.T) {
	f := setupBookingFixture(t)
	f.events.On("Publish", "booking.created", mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), f.db, f.input("bookings/national-id/key-1.jpg"))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.db, f.input("bookings/national-id/key-1.jpg"))
	assert.ErrorIs(t, err, apperrors.ErrFileKeyTaken)
}

func TestBookingService_Update_ReplacedFileIsDeleted(t *testing.T) {
	f := setupBookingFixture(t)
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.Create(context.Background(), f.db, f.input("bookings/national-id/old.jpg"))
	require.NoError(t, err)

	in := f.input("bookings/national-id/new.jpg")
	updated, err := f.svc.Update(context.Background(), f.db, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "bookings/national-id/new.jpg", updated.NationalIDPhotoFileKey)
	assert.Equal(t, []string{"bookings/national-id/old.jpg"}, f.files.deleted)
}

func TestBookingService_Update_EmptyFileKeyKeepsStoredPhoto(t *testing.T) {
	f := setupBookingFixture(t)
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.Create(context.Background(), f.db, f.input("bookings/national-id/old.jpg"))
	require.NoError(t, err)

	in := f.input("")
	in.Name = "Made W."
	updated, err := f.svc.Update(context.Background(), f.db, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Made W.", updated.Name)
	assert.Equal(t, "bookings/national-id/old.jpg", updated.NationalIDPhotoFileKey)
	assert.Empty(t, f.files.deleted)
}

func TestBookingService_List_Pagination(t *testing.T) {
	f := setupBookingFixture(t)
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	for i := 0; i < 5; i++ {
		in := f.input("bookings/national-id/key-" + string(rune('a'+i)) + ".jpg")
		_, err := f.svc.Create(context.Background(), f.db, in)
		require.NoError(t, err)
	}

	q := repositories.ListQuery{Page: 1, PageSize: 2, SortBy: "created_at", SortDir: "asc"}
	page1, total, err := f.svc.List(f.db, q)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page1, 2)

	q.Page = 2
	page2, _, err := f.svc.List(f.db, q)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	q.Page = 3
	page3, _, err := f.svc.List(f.db, q)
	require.NoError(t, err)
	require.Len(t, page3, 1)

	// Consecutive pages are disjoint.
	seen := map[string]bool{}
	for _, b := range append(append(page1, page2...), page3...) {
		assert.False(t, seen[b.ID], "booking %s appeared on two pages", b.ID)
		seen[b.ID] = true
	}
}

func TestBookingService_List_Filter(t *testing.T) {
	f := setupBookingFixture(t)
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	first := f.input("bookings/national-id/key-1.jpg")
	_, err := f.svc.Create(context.Background(), f.db, first)
	require.NoError(t, err)

	second := f.input("bookings/national-id/key-2.jpg")
	second.Name = "Wayan Sudira"
	second.Email = "wayan@example.com"
	_, err = f.svc.Create(context.Background(), f.db, second)
	require.NoError(t, err)

	// Case-insensitive partial match.
	got, total, err := f.svc.List(f.db, repositories.ListQuery{Search: "WAYAN"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Wayan Sudira", got[0].Name)
}

func TestBookingService_Destroy(t *testing.T) {
	f := setupBookingFixture(t)
	f.events.On("Publish", "booking.created", mock.Anything).Return(nil).Once()
	f.events.On("Publish", "booking.cancelled", mock.Anything).Return(nil).Once()

	created, err := f.svc.Create(context.Background(), f.db, f.input("bookings/national-id/key-1.jpg"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Destroy(f.db, created.ID))

	_, err = f.svc.Get(f.db, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	// The stored object is kept and its key stays blocked.
	_, err = f.svc.Create(context.Background(), f.db, f.input("bookings/national-id/key-1.jpg"))
	assert.ErrorIs(t, err, apperrors.ErrFileKeyTaken)
	f.events.AssertExpectations(t)
}
