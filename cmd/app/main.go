package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"linguacademy/config"
	"linguacademy/internal/catalog"
	"linguacademy/internal/infrastructure/cache"
	"linguacademy/internal/infrastructure/notify"
	"linguacademy/internal/infrastructure/repository"
	"linguacademy/internal/infrastructure/security"
	"linguacademy/internal/infrastructure/seed"
	"linguacademy/internal/middleware"
	"linguacademy/internal/platform/logger"
	handlers "linguacademy/internal/transport/http"
)

func main() {
	// 1. Config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		stdlog.Fatalf("Config load failed: %v", err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		stdlog.Fatalf("Logger init failed: %v", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Redis (optional)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("redis unavailable, running without cache, pub/sub and rate limits", "addr", cfg.RedisAddr, "error", err)
			_ = rdb.Close()
			rdb = nil
		} else {
			log.Info("connected to redis", "addr", cfg.RedisAddr)
			defer rdb.Close()
		}
	}

	// 3. Seed source
	source, err := buildSource(ctx, cfg, rdb, log)
	if err != nil {
		log.Fatal("seed source init failed", "source", cfg.SeedSource, "error", err)
	}

	// 4. Notifications
	inbox := notify.NewInbox(notify.DefaultInboxSize)
	sinks := notify.Fanout{inbox, notify.NewLogSink(log)}
	if rdb != nil {
		sinks = append(sinks, notify.NewRedisSink(rdb, log))
	}

	store := catalog.NewStore(source, sinks, log)

	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET is empty, using the development secret")
		secret = security.DevSecret
	}

	var limiterClient redis.Cmdable
	if rdb != nil {
		limiterClient = rdb
	}
	router := handlers.NewRouter(handlers.RouterDeps{
		Store:          store,
		Inbox:          inbox,
		Tokens:         security.NewTokenManager(secret, security.DefaultAccessTTL),
		Limiter:        middleware.NewRateLimiter(limiterClient, log),
		RatePerMinute:  cfg.RateLimitPerMinute,
		AllowedOrigins: middleware.ParseOrigins(cfg.AllowedOrigins),
		Log:            log,
	})

	// 5. Load in the background; the API answers 503 until it is done.
	go func() {
		start := time.Now()
		if err := store.Load(ctx); err != nil {
			log.Error("catalog load failed", "error", err)
			return
		}
		log.Info("catalog loaded", "duration_ms", time.Since(start).Milliseconds())
	}()

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("catalog service running", "addr", cfg.Port, "env", cfg.AppEnv, "seed_source", cfg.SeedSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func staticSource(cfg config.Config) *seed.Static {
	if cfg.SeedFile != "" {
		return seed.File(cfg.SeedFile)
	}
	return seed.Embedded()
}

// buildSource returns the seed source for cfg.SeedSource. Database sources are
// migrated, optionally seeded from the static catalog, and cached in redis.
func buildSource(ctx context.Context, cfg config.Config, rdb *redis.Client, log *logger.Logger) (catalog.Source, error) {
	var dialector gorm.Dialector
	switch cfg.SeedSource {
	case config.SeedPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.SeedSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return staticSource(cfg), nil
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	if cfg.Production() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	repo := repository.NewCatalogRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	if cfg.SeedDB {
		snap, err := staticSource(cfg).Load(ctx)
		if err != nil {
			return nil, err
		}
		seeded, err := repo.SeedIfEmpty(ctx, snap)
		if err != nil {
			return nil, err
		}
		if seeded {
			log.Info("database seeded from static catalog", "courses", len(snap.Courses), "lessons", len(snap.Lessons))
		}
	}

	if rdb == nil {
		return repo, nil
	}
	snapshots := cache.NewSnapshotCache(repo, rdb, cfg.SnapshotCacheTTL, log)
	if cfg.SeedDB {
		// a fresh seed must not be shadowed by an older cached snapshot
		if err := snapshots.Invalidate(ctx); err != nil {
			log.Warn("snapshot cache invalidate failed", "error", err)
		}
	}
	return snapshots, nil
}
