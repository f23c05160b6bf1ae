package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/labakery/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const storeConfigKey = "store_config"

// cachedStoreConfig is the JSON shape kept in the cache
type cachedStoreConfig struct {
	ID          int             `json:"id"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	ClosedDates []string        `json:"closedDates"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CachedStoreConfigRepository is a read-through cache in front of a
// StoreConfigRepository. Save invalidates the cached copy. Cache failures
// are logged and the call falls through to the wrapped repository.
type CachedStoreConfigRepository struct {
	next   settings.StoreConfigRepository
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedStoreConfigRepository wraps next with a cache held in store
func NewCachedStoreConfigRepository(next settings.StoreConfigRepository, store Store, ttl time.Duration, logger *zap.Logger) *CachedStoreConfigRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStoreConfigRepository{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached config, loading and caching it on a miss
func (r *CachedStoreConfigRepository) Get(ctx context.Context) (*settings.StoreConfig, error) {
	raw, err := r.store.Get(ctx, storeConfigKey)
	switch {
	case err == nil:
		var cached cachedStoreConfig
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &settings.StoreConfig{
				ID:          cached.ID,
				ShippingFee: cached.ShippingFee,
				ClosedDates: cached.ClosedDates,
				UpdatedAt:   cached.UpdatedAt,
			}, nil
		}
		r.logger.Warn("Discarding undecodable store config cache entry")
	case !errors.Is(err, ErrCacheMiss):
		r.logger.Warn("Store config cache read failed", zap.Error(err))
	}

	cfg, err := r.next.Get(ctx)
	if err != nil {
		return nil, err
	}
	r.put(ctx, cfg)
	return cfg, nil
}

// Save stores cfg and drops the cached copy
func (r *CachedStoreConfigRepository) Save(ctx context.Context, cfg *settings.StoreConfig) error {
	if err := r.next.Save(ctx, cfg); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, storeConfigKey); err != nil {
		r.logger.Warn("Store config cache invalidation failed", zap.Error(err))
	}
	return nil
}

func (r *CachedStoreConfigRepository) put(ctx context.Context, cfg *settings.StoreConfig) {
	closed := cfg.ClosedDates
	if closed == nil {
		closed = []string{}
	}
	raw, err := json.Marshal(cachedStoreConfig{
		ID:          cfg.ID,
		ShippingFee: cfg.ShippingFee,
		ClosedDates: closed,
		UpdatedAt:   cfg.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, storeConfigKey, raw, r.ttl); err != nil {
		r.logger.Warn("Store config cache write failed", zap.Error(err))
	}
}

var _ settings.StoreConfigRepository = (*CachedStoreConfigRepository)(nil)
