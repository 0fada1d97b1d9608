// Command api serves the marketplace HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cloudmarket/marketplace-api/internal/api"
	"github.com/cloudmarket/marketplace-api/internal/api/handler"
	"github.com/cloudmarket/marketplace-api/internal/api/middleware"
	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
	"github.com/cloudmarket/marketplace-api/internal/core/service"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/cache"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/config"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/db/memory"
	mongodb "github.com/cloudmarket/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cloudmarket/marketplace-api/internal/infrastructure/db/redis"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/queue"
	"github.com/cloudmarket/marketplace-api/internal/seed"
	"github.com/cloudmarket/marketplace-api/pkg/logger"
)

const (
	sweepInterval = time.Minute
	pruneInterval = 5 * time.Minute
)

func main() {
	os.Exit(run())
}

// repositories is the storage backend selected by STORE_DRIVER.
type repositories struct {
	users    ports.UserRepository
	products ports.ProductRepository
	offers   ports.OfferRepository
	audit    ports.AuditRepository
	ready    handler.Checker
	close    func(context.Context) error
}

// caches holds one namespace per entity service.
type caches struct {
	users    ports.Cache
	products ports.Cache
	offers   ports.Cache
	ready    handler.Checker
	close    func() error
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Pretty: true, Service: "marketplace-api"})
		boot.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.Env == config.EnvDevelopment,
		Service: "marketplace-api",
	})

	repos, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := repos.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	c, err := openCaches(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.CacheDriver).Msg("failed to open cache")
		return 1
	}
	defer func() {
		if err := c.close(); err != nil {
			log.Warn().Err(err).Msg("cache close failed")
		}
	}()

	auditLog := logger.Component("audit")
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(repos.audit, auditLog), auditLog)
	dispatcher.Start()

	tokens := service.NewTokenService(cfg.JWTSecret)
	users := service.NewUserService(repos.users, c.users, cfg.CacheTTL, dispatcher, log)

	limiter := middleware.NewLoginLimiter(cfg.Login.RatePerMinute, cfg.Login.Burst)
	go every(ctx, pruneInterval, limiter.Prune)

	readiness := map[string]handler.Checker{}
	if repos.ready != nil {
		readiness["mongo"] = repos.ready
	}
	if c.ready != nil {
		readiness["redis"] = c.ready
	}

	e := api.NewRouter(api.Deps{
		Log:         log,
		Tokens:      tokens,
		Auth:        service.NewAuthService(repos.users, tokens, log),
		Products:    service.NewProductService(repos.products, c.products, cfg.CacheTTL, dispatcher, log),
		Offers:      service.NewOfferService(repos.offers, repos.products, c.offers, cfg.CacheTTL, dispatcher, log),
		Users:       users,
		Limiter:     limiter,
		Readiness:   readiness,
		Registry:    prometheus.NewRegistry(),
		BasePath:    cfg.BasePath,
		CORSOrigins: cfg.CORSOrigin,
		Production:  cfg.IsProduction(),
		Started:     time.Now(),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("store", cfg.StoreDriver).Str("cache", cfg.CacheDriver).Msg("listening")
		serveErr <- e.Start(":" + cfg.Port)
	}()

	code := 0
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			code = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
		code = 1
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not fully drained")
	}
	log.Info().Msg("stopped")
	return code
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.StoreDriver == config.DriverMemory {
		s := memory.NewStore()
		f, err := seed.Default()
		if err != nil {
			return nil, err
		}
		if _, err := seed.Run(ctx, seed.Repositories{Users: s.Users, Products: s.Products, Offers: s.Offers}, f, seed.Options{}, logger.Component("seed")); err != nil {
			return nil, err
		}
		return &repositories{
			users:    s.Users,
			products: s.Products,
			offers:   s.Offers,
			audit:    s.Audit,
			close:    func(context.Context) error { return nil },
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	s := mongodb.NewStore(db)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	return &repositories{
		users:    s.Users,
		products: s.Products,
		offers:   s.Offers,
		audit:    s.Audit,
		ready:    func(ctx context.Context) error { return mongodb.Ping(ctx, client) },
		close:    client.Disconnect,
	}, nil
}

func openCaches(ctx context.Context, cfg *config.Config) (*caches, error) {
	if cfg.CacheDriver == config.DriverRedis {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return &caches{
			users:    cache.NewInstrumented(redisdb.NewCache(client, domain.EntityUser), domain.EntityUser),
			products: cache.NewInstrumented(redisdb.NewCache(client, domain.EntityProduct), domain.EntityProduct),
			offers:   cache.NewInstrumented(redisdb.NewCache(client, domain.EntityOffer), domain.EntityOffer),
			ready:    func(ctx context.Context) error { return redisdb.Ping(ctx, client) },
			close:    client.Close,
		}, nil
	}

	mem := func(entity string) ports.Cache {
		m := cache.NewMemory(time.Now)
		go m.RunSweeper(ctx, sweepInterval)
		return cache.NewInstrumented(m, entity)
	}
	return &caches{
		users:    mem(domain.EntityUser),
		products: mem(domain.EntityProduct),
		offers:   mem(domain.EntityOffer),
		close:    func() error { return nil },
	}, nil
}

func every(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
