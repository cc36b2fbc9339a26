package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"wallet-client-go/internal/api"
	"wallet-client-go/internal/auth"
	"wallet-client-go/internal/boltstore"
	"wallet-client-go/internal/cache"
	"wallet-client-go/internal/database"
	"wallet-client-go/internal/filterstate"
	"wallet-client-go/internal/models"
	"wallet-client-go/internal/redisstore"
	"wallet-client-go/internal/remote"
	"wallet-client-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	BackendSqlite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Backend store.Backend
	Cache   *cache.Store
	Remote  *remote.Client
	Tokens  *auth.FileTokenStore
	Filters *filterstate.State
	Wallet  *api.WalletService
	Auth    *auth.Service

	filterFile string
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// OpenBackend opens the cache backend selected by CACHE_BACKEND
func OpenBackend(ctx context.Context, cfg *models.Config) (store.Backend, error) {
	var (
		backend store.Backend
		err     error
	)

	switch strings.ToLower(cfg.Cache.Backend) {
	case BackendSqlite, "":
		var svc *database.Service
		if svc, err = database.NewService(ctx, cfg.Database, cfg.Cache.Namespace); err == nil {
			backend = svc
		}
	case BackendBolt:
		var svc *boltstore.Store
		if svc, err = boltstore.Open(cfg.Cache.Path, cfg.Cache.Namespace); err == nil {
			backend = svc
		}
	case BackendRedis:
		var svc *redisstore.Store
		if svc, err = redisstore.New(ctx, cfg.Redis, cfg.Cache.Namespace); err == nil {
			backend = svc
		}
	default:
		err = fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to open %s cache: %w", cfg.Cache.Backend, err)
	}
	return backend, nil
}

// InitializeCacheOnly opens the offline cache without the remote API.
// Useful for inspecting or clearing the cache.
func InitializeCacheOnly(ctx context.Context, cfg *models.Config) (store.Backend, *cache.Store, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return backend, cache.New(backend), nil
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	backend, cacheStore, err := InitializeCacheOnly(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cacheStore.SeedCacheIfNeeded(ctx)

	tokens, err := auth.NewFileTokenStore(cfg.Session.TokenFile)
	if err != nil {
		backend.Close()
		return nil, err
	}

	client, err := remote.NewClient(cfg.API, tokens)
	if err != nil {
		backend.Close()
		return nil, err
	}

	filters, err := filterstate.Load(cfg.Session.FilterFile)
	if err != nil {
		zap.L().Warn("Ignoring saved filter", zap.Error(err))
		filters = filterstate.New()
	}

	services := &Services{
		Backend:    backend,
		Cache:      cacheStore,
		Remote:     client,
		Tokens:     tokens,
		Filters:    filters,
		Wallet:     api.NewWalletService(client, cacheStore, filters),
		filterFile: cfg.Session.FilterFile,
	}
	services.Auth = auth.NewService(client, tokens, services.resetFilters)

	zap.L().Info("Services initialized",
		zap.String("api", cfg.API.BaseURL),
		zap.String("cache_backend", cfg.Cache.Backend))

	return services, nil
}

// SaveFilters persists the active filter for the next command
func (cs *Services) SaveFilters() error {
	return cs.Filters.Save(cs.filterFile)
}

func (cs *Services) resetFilters() error {
	cs.Filters.Reset()
	return filterstate.Remove(cs.filterFile)
}

func (cs *Services) Close() {
	if cs.Backend != nil {
		cs.Backend.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
