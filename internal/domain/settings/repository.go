package settings

import "context"

// StoreConfigRepository loads and stores the settings singleton
type StoreConfigRepository interface {
	// Get returns the stored config, or DefaultStoreConfig when none was saved
	Get(ctx context.Context) (*StoreConfig, error)
	Save(ctx context.Context, cfg *StoreConfig) error
}
