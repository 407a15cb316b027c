package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/onesteptask/config"
	"github.com/oksasatya/onesteptask/internal/application"
	pginfra "github.com/oksasatya/onesteptask/internal/infrastructure/postgres"
	"github.com/oksasatya/onesteptask/pkg/helpers"
)

// seed migrates the Postgres schema and inserts the default admin,
// testimonials and home page content when they are missing.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	dsn := cfg.PostgresDSN()
	if err := pginfra.Migrate(dsn, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pool, err := pginfra.NewPool(ctx, dsn, pginfra.PoolOptions{MaxConns: 2, MinConns: 1, MaxConnLife: cfg.DBMaxConnLife})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	store := pginfra.NewStore(pool)
	seeder := application.NewSeeder(store, application.NewCredentials(store.Users, store.Admins), application.AdminSeed{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Email:    cfg.AdminEmail,
		Name:     cfg.AdminName,
	}, logger)
	if err := seeder.EnsureDefaults(ctx); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	logger.Infof("seed complete; admin username=%s", cfg.AdminUsername)
}
