package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	catalogKeyPrefix = "catalog:"
	plansCacheKey    = catalogKeyPrefix + "plans"
)

func planCacheKey(id uuid.UUID) string {
	return catalogKeyPrefix + "plan:" + id.String()
}

// PlanCache is the read-through cache used for the catalog. Misses and
// failures fall back to the store.
type PlanCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

type CatalogService struct {
	db    *gorm.DB
	cache PlanCache
	ttl   time.Duration
}

// NewCatalogService returns a catalog reader. cache may be nil.
func NewCatalogService(db *gorm.DB, cache PlanCache, ttl time.Duration) *CatalogService {
	return &CatalogService{db: db, cache: cache, ttl: ttl}
}

func (s *CatalogService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	plans := []models.SubscriptionPlan{}
	if s.cacheGet(ctx, plansCacheKey, &plans) {
		return plans, nil
	}

	if err := s.db.WithContext(ctx).Order("price ASC").Find(&plans).Error; err != nil {
		return nil, storeErr("list plans", err)
	}
	s.cacheSet(ctx, plansCacheKey, plans)
	return plans, nil
}

func (s *CatalogService) GetPlan(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error) {
	key := planCacheKey(id)

	var plan models.SubscriptionPlan
	if s.cacheGet(ctx, key, &plan) {
		return &plan, nil
	}

	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, storeErr("get plan", err)
	}
	s.cacheSet(ctx, key, plan)
	return &plan, nil
}

// SeedDefaults inserts the default catalog when no plan exists yet. Every
// cached catalog entry, list and single plans alike, is dropped afterwards.
func (s *CatalogService) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.SubscriptionPlan{}).Count(&count).Error; err != nil {
		return storeErr("count plans", err)
	}
	if count > 0 {
		return nil
	}

	plans := []models.SubscriptionPlan{
		{
			ID:       uuid.New(),
			Name:     "Basic",
			Price:    9.99,
			Features: datatypes.JSON(`["HD streaming","1 screen","Cancel anytime"]`),
		},
		{
			ID:       uuid.New(),
			Name:     "Standard",
			Price:    14.99,
			Features: datatypes.JSON(`["Full HD streaming","2 screens","Watch later list","Cancel anytime"]`),
		},
		{
			ID:       uuid.New(),
			Name:     "Premium",
			Price:    19.99,
			Features: datatypes.JSON(`["4K + HDR streaming","4 screens","Watch later list","Offline downloads"]`),
		},
	}
	if err := s.db.WithContext(ctx).Create(&plans).Error; err != nil {
		return storeErr("seed plans", err)
	}
	slog.Info("subscription catalog seeded", "plans", len(plans))

	if s.cache != nil {
		if err := s.cache.InvalidatePrefix(ctx, catalogKeyPrefix); err != nil {
			slog.Warn("catalog cache invalidate failed", "error", err)
		}
	}
	return nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, out)
	if err != nil {
		slog.Warn("catalog cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		slog.Warn("catalog cache write failed", "key", key, "error", err)
	}
}
