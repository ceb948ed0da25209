// Command main loads the SkillSwap demo community into the configured database.
package main

import (
	"flag"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"
)

func main() {
	extra := flag.Int("extra", 0, "Number of generated users to add alongside the demo users")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Report what would be seeded without writing")
	fast := flag.Bool("fast", false, "Store plain passwords (development only, logins will fail)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: demo fixture + %d generated users, clean=%v\n", *extra, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() && *shouldClean {
		log.Fatal("❌ Refusing to clean a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	res, err := seed.Seed(db, seed.Options{
		ExtraUsers:  *extra,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *fast,
		DryRun:      *dryRun,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d skill records, %d matches.", res.Users, res.UserSkills, res.Matches)
	log.Printf("📧 All seeded users have the password: %s", seed.DefaultPassword)
}
