// Command migrate runs schema operations for the SkillSwap database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"

	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: migrate [-timeout 2m] <up|auto|status|down|redo> [version]")
}

func run() error {
	timeout := flag.Duration("timeout", 2*time.Minute, "abort the operation after this long")
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defer middleware.InitLogger(cfg.Env, cfg.SentryDSN)()

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Println("sql migrations applied")
	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return fmt.Errorf("auto schema apply failed: %w", err)
		}
		log.Println("automigrations applied")
	case "status":
		return printStatus(ctx, db, cfg)
	case "down":
		version, err := versionArg()
		if err != nil {
			return err
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Printf("rolled back migration %06d", version)
	case "redo":
		version, err := versionArg()
		if err != nil {
			return err
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("reapply failed: %w", err)
		}
		log.Printf("reapplied migration %06d", version)
	default:
		return usage()
	}

	return nil
}

func versionArg() (int, error) {
	if flag.NArg() < 2 {
		return 0, fmt.Errorf("usage: migrate %s <version>", flag.Arg(0))
	}
	version, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", flag.Arg(1), err)
	}
	return version, nil
}

func printStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	status, err := database.GetSchemaStatus(ctx, db, cfg)
	if err != nil {
		return fmt.Errorf("schema status failed: %w", err)
	}
	log.Printf("mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d drifted=%d",
		status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate,
		len(status.AppliedVersions), len(status.PendingMigrations), len(status.DriftedVersions))
	for _, m := range status.PendingMigrations {
		log.Printf("pending: %s", m.String())
	}
	for _, v := range status.DriftedVersions {
		log.Printf("drifted: %06d (script changed after it was applied)", v)
	}
	return nil
}
