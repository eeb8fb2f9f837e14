package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"surfcamp/internal/models"
)

var (
	countrySearchable = []string{"name", "code", "dial_code"}
	countrySortable   = map[string]bool{"name": true, "code": true, "dial_code": true, "created_at": true, "updated_at": true}

	surfboardSearchable = []string{"name"}
	surfboardSortable   = map[string]bool{"name": true, "created_at": true, "updated_at": true}
)

// GORMCountryRepository is a GORM implementation of CountryRepository.
type GORMCountryRepository struct{}

// NewGORMCountryRepository creates a new instance of GORMCountryRepository.
func NewGORMCountryRepository() *GORMCountryRepository {
	return &GORMCountryRepository{}
}

func (r *GORMCountryRepository) Create(tx *gorm.DB, country *models.Country) error {
	if country.ID == "" {
		country.ID = uuid.New().String()
	}
	if err := tx.Create(country).Error; err != nil {
		return fmt.Errorf("failed to create country: %w", err)
	}
	return nil
}

func (r *GORMCountryRepository) GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.Country, error) {
	if includeDeleted {
		tx = tx.Unscoped()
	}
	var country models.Country
	if err := tx.First(&country, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return &country, nil
}

func (r *GORMCountryRepository) List(tx *gorm.DB, q ListQuery) ([]models.Country, int64, error) {
	scoped, q, err := applyList(tx.Model(&models.Country{}), q, countrySearchable, countrySortable)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count countries: %w", err)
	}

	var countries []models.Country
	if err := scoped.Limit(q.PageSize).Offset(q.offset()).Find(&countries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, total, nil
}

func (r *GORMCountryRepository) Update(tx *gorm.DB, country *models.Country) error {
	res := tx.Save(country)
	if res.Error != nil {
		return fmt.Errorf("failed to update country: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("country with ID %s not found for update", country.ID)
	}
	return nil
}

func (r *GORMCountryRepository) SoftDelete(tx *gorm.DB, id string) error {
	if err := tx.Delete(&models.Country{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to soft-delete country: %w", err)
	}
	return nil
}

// GORMSurfboardRepository is a GORM implementation of SurfboardRepository.
type GORMSurfboardRepository struct{}

// NewGORMSurfboardRepository creates a new instance of
// GORMSurfboardRepository.
func NewGORMSurfboardRepository() *GORMSurfboardRepository {
	return &GORMSurfboardRepository{}
}

func (r *GORMSurfboardRepository) Create(tx *gorm.DB, surfboard *models.Surfboard) error {
	if surfboard.ID == "" {
		surfboard.ID = uuid.New().String()
	}
	if err := tx.Create(surfboard).Error; err != nil {
		return fmt.Errorf("failed to create surfboard: %w", err)
	}
	return nil
}

func (r *GORMSurfboardRepository) GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.Surfboard, error) {
	return r.getOne(tx, includeDeleted, "id = ?", id)
}

func (r *GORMSurfboardRepository) GetByName(tx *gorm.DB, name string, includeDeleted bool) (*models.Surfboard, error) {
	return r.getOne(tx, includeDeleted, "name = ?", name)
}

func (r *GORMSurfboardRepository) getOne(tx *gorm.DB, includeDeleted bool, cond string, arg any) (*models.Surfboard, error) {
	if includeDeleted {
		tx = tx.Unscoped()
	}
	var surfboard models.Surfboard
	if err := tx.First(&surfboard, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get surfboard: %w", err)
	}
	return &surfboard, nil
}

func (r *GORMSurfboardRepository) List(tx *gorm.DB, q ListQuery) ([]models.Surfboard, int64, error) {
	scoped, q, err := applyList(tx.Model(&models.Surfboard{}), q, surfboardSearchable, surfboardSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count surfboards: %w", err)
	}

	var surfboards []models.Surfboard
	if err := scoped.Limit(q.PageSize).Offset(q.offset()).Find(&surfboards).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list surfboards: %w", err)
	}
	return surfboards, total, nil
}

func (r *GORMSurfboardRepository) Update(tx *gorm.DB, surfboard *models.Surfboard) error {
	res := tx.Save(surfboard)
	if res.Error != nil {
		return fmt.Errorf("failed to update surfboard: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("surfboard with ID %s not found for update", surfboard.ID)
	}
	return nil
}

func (r *GORMSurfboardRepository) SoftDelete(tx *gorm.DB, id string) error {
	if err := tx.Delete(&models.Surfboard{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to soft-delete surfboard: %w", err)
	}
	return nil
}
