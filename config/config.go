package config

import "os"

// Config holds the application configuration, loaded from the environment.
type Config struct {
	// InventoryFile and LoginFile are the JSON documents used by the file
	// storage driver.
	InventoryFile string
	LoginFile     string

	// SessionFile holds the signed session token between runs.
	SessionFile string

	// ChartDir is where generated chart PNGs are written.
	ChartDir string

	// JWTSecret signs session tokens.
	JWTSecret string

	// StorageDriver selects the persistence adapter: "file" or "postgres".
	StorageDriver string
	DatabaseURL   string
}

// Load reads the configuration from environment variables, falling back to
// defaults suitable for a local single-user setup.
func Load() *Config {
	return &Config{
		InventoryFile: getenv("STOCKPILE_INVENTORY_FILE", "inventory.json"),
		LoginFile:     getenv("STOCKPILE_LOGIN_FILE", "login.json"),
		SessionFile:   getenv("STOCKPILE_SESSION_FILE", ".stockpile_session"),
		ChartDir:      getenv("STOCKPILE_CHART_DIR", "charts"),
		JWTSecret:     getenv("JWT_SECRET", "stockpile-dev-secret"),
		StorageDriver: getenv("STORAGE_DRIVER", "file"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
