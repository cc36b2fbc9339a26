/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"wallet-client-go/internal/models"
)

func Load() (*models.Config, error) {
	httpTimeout, err := getEnvDuration("WALLET_HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	syncInterval, err := getEnvDuration("SYNC_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cachePath := getEnvString("CACHE_PATH", "wallet-cache.db")

	return &models.Config{
		API: models.APIConfig{
			BaseURL: getEnvString("WALLET_API_BASE_URL", "http://localhost:3000"),
			APIKey:  getEnvString("WALLET_API_KEY", ""),
			Timeout: httpTimeout,
		},
		Cache: models.CacheConfig{
			Backend:   getEnvString("CACHE_BACKEND", "sqlite"),
			Path:      cachePath,
			Namespace: getEnvString("CACHE_NAMESPACE", "wallet"),
		},
		Database: models.DatabaseConfig{
			Path:            cachePath,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Redis: models.RedisConfig{
			Addr:     getEnvString("REDIS_ADDR", "localhost:6379"),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: models.SessionConfig{
			TokenFile:  getEnvString("TOKEN_FILE", ".wallet-token.json"),
			FilterFile: getEnvString("FILTER_FILE", ".wallet-filters.yaml"),
		},
		Sync: models.SyncConfig{
			Interval: syncInterval,
		},
		Emulator: models.EmulatorConfig{
			Addr:   getEnvString("EMULATOR_ADDR", ":3000"),
			APIKey: getEnvString("EMULATOR_API_KEY", ""),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
