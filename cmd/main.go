package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/config"
	"github.com/oksasatya/onesteptask/internal/container"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
	"github.com/oksasatya/onesteptask/internal/infrastructure/memory"
	"github.com/oksasatya/onesteptask/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/onesteptask/internal/infrastructure/postgres"
	"github.com/oksasatya/onesteptask/internal/infrastructure/redisstore"
	"github.com/oksasatya/onesteptask/internal/infrastructure/search"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/internal/router"
	"github.com/oksasatya/onesteptask/pkg/helpers"
	"github.com/oksasatya/onesteptask/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Entity store
	var store repository.Store
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		store = pginfra.NewStore(pool)
	case "memory":
		store = memory.NewStore()
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	// Redis (sessions and rate limits)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
	} else {
		logger.Warn("REDIS_ADDR not set; rate limiting disabled")
	}

	var sessions repository.SessionStore
	switch cfg.SessionDriver {
	case "redis":
		if rdb == nil {
			log.Fatal("SESSION_DRIVER=redis requires REDIS_ADDR")
		}
		sessions = redisstore.NewSessionStore(rdb)
	default:
		ms := memory.NewSessionStore()
		defer ms.Close()
		sessions = ms
	}

	deps := container.Deps{
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		SessionStore: sessions,
		Redis:        rdb,
	}

	// Elasticsearch task index (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch: %v", err)
		}
		idx := search.NewTaskIndex(es, cfg.ESTasksIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			helpers.LogError(logger, "elasticsearch index unavailable; search falls back to the store", err, logrus.Fields{"index": cfg.ESTasksIndex})
		} else {
			deps.TaskIndex = idx
		}
	}

	// RabbitMQ task emails (optional)
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; task emails disabled", err, nil)
		} else {
			defer pub.Close()
			deps.Notifier = notify.NewEmailNotifier(pub, cfg)
		}
	}

	c := container.New(deps)
	if err := c.Tasks.RebuildIndex(ctx); err != nil {
		helpers.LogError(logger, "task index rebuild failed; search scans the store", err, logrus.Fields{"index": cfg.ESTasksIndex})
	}
	if cfg.SeedOnStart {
		if err := c.Seeder.EnsureDefaults(ctx); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	}

	r := newEngine(cfg, c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func newEngine(cfg *config.Config, c *container.Container) *gin.Engine {
	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList(), cfg.TrustCloudflare); err != nil {
		log.Fatalf("invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	reg.Use(middleware.Session(c.Sessions, c.JWT))
	router.InitModules(reg, c)
	reg.RegisterAll()
	return r
}
