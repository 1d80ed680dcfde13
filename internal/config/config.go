package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func homeDirOrFallback() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

// Config holds all user-configurable settings.
type Config struct {
	// CatalogURL is the root of the map catalog API.
	CatalogURL string `yaml:"catalog_url"`
	// LeaderboardURL is the root of the leaderboard API.
	LeaderboardURL string `yaml:"leaderboard_url"`
	// SearchSortOrder is passed to catalog searches (Relevance, Latest, Rating, Curated).
	SearchSortOrder string `yaml:"search_sort_order"`
	// RequestsPerSecond rate-limits calls to both APIs.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// RequestTimeout bounds a single HTTP exchange.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// MaxPreviewBytes caps the size of a downloaded audio preview.
	MaxPreviewBytes int64 `yaml:"max_preview_bytes"`

	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogCompress   bool   `yaml:"log_compress"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CatalogURL:        "https://api.beatsaver.com",
		LeaderboardURL:    "https://scoresaber.com",
		SearchSortOrder:   "Relevance",
		RequestsPerSecond: 5.0,
		RequestTimeout:    20 * time.Second,
		MaxPreviewBytes:   16 << 20,
		LogFile:           filepath.Join(Dir(), "saberdeck.log"),
		LogLevel:          "info",
		LogMaxSizeMB:      5,
		LogMaxBackups:     2,
	}
}

// Dir returns the directory where the config and log files live.
func Dir() string {
	if dir := os.Getenv("SABERDECK_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(homeDirOrFallback(), ".config", "saberdeck")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file at path (Path() when empty), writing defaults if
// it doesn't exist yet, then applies .env and SABERDECK_* overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnv() {
	c.CatalogURL = getEnv("SABERDECK_CATALOG_URL", c.CatalogURL)
	c.LeaderboardURL = getEnv("SABERDECK_LEADERBOARD_URL", c.LeaderboardURL)
	c.SearchSortOrder = getEnv("SABERDECK_SORT_ORDER", c.SearchSortOrder)
	c.LogFile = getEnv("SABERDECK_LOG_FILE", c.LogFile)
	c.LogLevel = getEnv("SABERDECK_LOG_LEVEL", c.LogLevel)
	if v, ok := os.LookupEnv("SABERDECK_REQUESTS_PER_SECOND"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.RequestsPerSecond = f
		}
	}
	if v, ok := os.LookupEnv("SABERDECK_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.RequestTimeout = d
		}
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
