// Package bootstrap wires the runtime dependencies shared by the server and
// the maintenance commands.
package bootstrap

import (
	"fmt"
	"log"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo loads the demo fixture after the schema is applied. Seeding is
	// idempotent, so it is safe on every boot of a development instance.
	SeedDemo bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := seedDemo(cfg, db, opts); err != nil {
		return nil, nil, err
	}

	return db, r, nil
}

func seedDemo(cfg *config.Config, db *gorm.DB, opts Options) error {
	if !opts.SeedDemo {
		return nil
	}
	if cfg.IsProduction() {
		return fmt.Errorf("demo seeding is disabled in production")
	}

	res, err := seed.Seed(db, seed.Options{})
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}
	log.Printf("demo data ensured: %d users, %d skills, %d matches", res.Users, res.Skills, res.Matches)
	return nil
}
