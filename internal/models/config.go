package models

import "time"

// Config represents the application configuration
type Config struct {
	API      APIConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Sync     SyncConfig
	Emulator EmulatorConfig
}

// APIConfig holds remote wallet API settings
type APIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CacheConfig selects and names the offline cache backend
type CacheConfig struct {
	Backend   string // sqlite, bolt, redis
	Path      string
	Namespace string
}

// DatabaseConfig holds SQLite connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds the files that stand in for app session state
type SessionConfig struct {
	TokenFile  string
	FilterFile string
}

// SyncConfig holds background refresh settings
type SyncConfig struct {
	Interval time.Duration
}

// EmulatorConfig holds local API emulator settings
type EmulatorConfig struct {
	Addr   string
	APIKey string
}
