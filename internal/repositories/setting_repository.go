package repositories

import (
	"gorm.io/gorm"

	"surfcamp/internal/models"
)

// CountryRepository defines data access for countries. Same conventions as
// UserRepository: the transaction handle comes from the caller and lookups
// return (nil, nil) for no match.
type CountryRepository interface {
	Create(tx *gorm.DB, country *models.Country) error
	GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.Country, error)
	List(tx *gorm.DB, q ListQuery) ([]models.Country, int64, error)
	Update(tx *gorm.DB, country *models.Country) error
	SoftDelete(tx *gorm.DB, id string) error
}

// SurfboardRepository defines data access for surfboards. GetByName backs
// the soft-delete-aware name uniqueness check on the write path.
type SurfboardRepository interface {
	Create(tx *gorm.DB, surfboard *models.Surfboard) error
	GetByID(tx *gorm.DB, id string, includeDeleted bool) (*models.Surfboard, error)
	GetByName(tx *gorm.DB, name string, includeDeleted bool) (*models.Surfboard, error)
	List(tx *gorm.DB, q ListQuery) ([]models.Surfboard, int64, error)
	Update(tx *gorm.DB, surfboard *models.Surfboard) error
	SoftDelete(tx *gorm.DB, id string) error
}
