package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
)

const (
	countriesCacheKey  = "settings:countries"
	surfboardsCacheKey = "settings:surfboards"
)

// ListCache is the read-through cache in front of the default settings list
// reads. Implemented by pkg/cache.Cache.
type ListCache interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error)
	Invalidate(ctx context.Context, keys ...string) error
}

// SettingService manages the reference settings consumed by the booking
// form: countries and surfboards. The default list reads (what the form
// requests) go through the Redis cache; every write invalidates it. A nil
// cache bypasses caching entirely.
type SettingService struct {
	countries  repositories.CountryRepository
	surfboards repositories.SurfboardRepository
	cache      ListCache
	cacheTTL   time.Duration
}

// NewSettingService creates a new SettingService.
func NewSettingService(countries repositories.CountryRepository, surfboards repositories.SurfboardRepository, c ListCache, ttl time.Duration) *SettingService {
	return &SettingService{countries: countries, surfboards: surfboards, cache: c, cacheTTL: ttl}
}

type cachedList[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// cacheable reports whether q is the default list read. Only that shape is
// cached, so invalidation stays a fixed-key delete.
func cacheable(q repositories.ListQuery) bool {
	return q.Search == "" && q.SortBy == "" && q.Page <= 1 &&
		(q.PageSize == 0 || q.PageSize == repositories.DefaultPageSize)
}

func listThroughCache[T any](ctx context.Context, c ListCache, key string, ttl time.Duration, load func() ([]T, int64, error)) ([]T, int64, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(context.Context) ([]byte, error) {
		items, total, err := load()
		if err != nil {
			return nil, err
		}
		return json.Marshal(cachedList[T]{Items: items, Total: total})
	})
	if err != nil {
		return nil, 0, err
	}
	var out cachedList[T]
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

func (s *SettingService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, countriesCacheKey, surfboardsCacheKey)
	}
}

// ListCountries returns a page of countries plus the total count.
func (s *SettingService) ListCountries(ctx context.Context, tx *gorm.DB, q repositories.ListQuery) ([]models.Country, int64, error) {
	if s.cache == nil || !cacheable(q) {
		items, total, err := s.countries.List(tx, q)
		if err != nil {
			return nil, 0, apperrors.NewUpstream("list countries", err)
		}
		return items, total, nil
	}
	items, total, err := listThroughCache[models.Country](ctx, s.cache, countriesCacheKey, s.cacheTTL, func() ([]models.Country, int64, error) {
		return s.countries.List(tx, q)
	})
	if err != nil {
		return nil, 0, apperrors.NewUpstream("list countries", err)
	}
	return items, total, nil
}

// GetCountry returns one country by ID.
func (s *SettingService) GetCountry(tx *gorm.DB, id string) (*models.Country, error) {
	country, err := s.countries.GetByID(tx, id, false)
	if err != nil {
		return nil, apperrors.NewUpstream("look up country", err)
	}
	if country == nil {
		return nil, apperrors.ErrCountryNotFound
	}
	return country, nil
}

// CreateCountry persists a new country.
func (s *SettingService) CreateCountry(ctx context.Context, tx *gorm.DB, country *models.Country) error {
	if err := s.countries.Create(tx, country); err != nil {
		return apperrors.NewUpstream("create country", err)
	}
	s.invalidate(ctx)
	return nil
}

// UpdateCountry replaces the fields of an existing country.
func (s *SettingService) UpdateCountry(ctx context.Context, tx *gorm.DB, country *models.Country) error {
	existing, err := s.GetCountry(tx, country.ID)
	if err != nil {
		return err
	}
	country.CreatedAt = existing.CreatedAt
	if err := s.countries.Update(tx, country); err != nil {
		return apperrors.NewUpstream("update country", err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteCountry soft-deletes a country.
func (s *SettingService) DeleteCountry(ctx context.Context, tx *gorm.DB, id string) error {
	if _, err := s.GetCountry(tx, id); err != nil {
		return err
	}
	if err := s.countries.SoftDelete(tx, id); err != nil {
		return apperrors.NewUpstream("soft-delete country", err)
	}
	s.invalidate(ctx)
	return nil
}

// ListSurfboards returns a page of surfboards plus the total count.
func (s *SettingService) ListSurfboards(ctx context.Context, tx *gorm.DB, q repositories.ListQuery) ([]models.Surfboard, int64, error) {
	if s.cache == nil || !cacheable(q) {
		items, total, err := s.surfboards.List(tx, q)
		if err != nil {
			return nil, 0, apperrors.NewUpstream("list surfboards", err)
		}
		return items, total, nil
	}
	items, total, err := listThroughCache[models.Surfboard](ctx, s.cache, surfboardsCacheKey, s.cacheTTL, func() ([]models.Surfboard, int64, error) {
		return s.surfboards.List(tx, q)
	})
	if err != nil {
		return nil, 0, apperrors.NewUpstream("list surfboards", err)
	}
	return items, total, nil
}

// GetSurfboard returns one surfboard by ID.
func (s *SettingService) GetSurfboard(tx *gorm.DB, id string) (*models.Surfboard, error) {
	surfboard, err := s.surfboards.GetByID(tx, id, false)
	if err != nil {
		return nil, apperrors.NewUpstream("look up surfboard", err)
	}
	if surfboard == nil {
		return nil, apperrors.ErrSurfboardNotFound
	}
	return surfboard, nil
}

// CreateSurfboard persists a new surfboard. The name lookup includes
// soft-deleted rows: the unique index is unconditional, so a logically
// deleted board still blocks the name.
func (s *SettingService) CreateSurfboard(ctx context.Context, tx *gorm.DB, surfboard *models.Surfboard) error {
	existing, err := s.surfboards.GetByName(tx, surfboard.Name, true)
	if err != nil {
		return apperrors.NewUpstream("look up surfboard by name", err)
	}
	if existing != nil {
		return apperrors.ErrSurfboardExists
	}

	if err := s.surfboards.Create(tx, surfboard); err != nil {
		return apperrors.NewUpstream("create surfboard", err)
	}
	s.invalidate(ctx)
	return nil
}

// UpdateSurfboard renames a surfboard. Keeping the current name is not a
// conflict; taking another board's name is, soft-deleted included.
func (s *SettingService) UpdateSurfboard(ctx context.Context, tx *gorm.DB, surfboard *models.Surfboard) error {
	existing, err := s.GetSurfboard(tx, surfboard.ID)
	if err != nil {
		return err
	}

	if surfboard.Name != existing.Name {
		other, err := s.surfboards.GetByName(tx, surfboard.Name, true)
		if err != nil {
			return apperrors.NewUpstream("look up surfboard by name", err)
		}
		if other != nil && other.ID != surfboard.ID {
			return apperrors.ErrSurfboardExists
		}
	}

	surfboard.CreatedAt = existing.CreatedAt
	if err := s.surfboards.Update(tx, surfboard); err != nil {
		return apperrors.NewUpstream("update surfboard", err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteSurfboard soft-deletes a surfboard. The name stays blocked for new
// boards because the unique index also covers deleted rows.
func (s *SettingService) DeleteSurfboard(ctx context.Context, tx *gorm.DB, id string) error {
	if _, err := s.GetSurfboard(tx, id); err != nil {
		return err
	}
	if err := s.surfboards.SoftDelete(tx, id); err != nil {
		return apperrors.NewUpstream("soft-delete surfboard", err)
	}
	s.invalidate(ctx)
	return nil
}
