package storage

import (
	"fmt"

	"stockpile/config"
	"stockpile/models"
)

// Adapter is the persistence contract: whole documents are loaded once and
// rewritten in full on every save. Exactly one session uses an adapter at a
// time; there is no cross-process coordination.
type Adapter interface {
	LoadDocument() (models.Document, error)
	SaveDocument(models.Document) error
	LoadCredentials() (models.Credentials, error)
	SaveCredentials(models.Credentials) error
	Close()
}

// Open builds the adapter selected by cfg.StorageDriver.
func Open(cfg *config.Config) (Adapter, error) {
	switch cfg.StorageDriver {
	case "", "file":
		return NewFileAdapter(cfg.InventoryFile, cfg.LoginFile), nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("storage driver %q requires DATABASE_URL", cfg.StorageDriver)
		}
		return NewPostgresAdapter(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
