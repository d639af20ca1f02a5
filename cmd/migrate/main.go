package main

import (
	"flag"
	"log"
	"time"

	"github.com/lingochat/memories-backend/internal/config"
	"github.com/lingochat/memories-backend/internal/migration"
	"github.com/lingochat/memories-backend/pkg/database"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seed := flag.Bool("seed", false, "insert demo users and friendships when the users table is empty")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if files := config.LoadDotEnv("."); len(files) == 0 {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := cfg.Database.GetDSN()
	if cfg.Database.Driver == "sqlite" {
		dsn = cfg.Database.Path
	}
	db, err := database.Open(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             dsn,
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Minute,
		LogSQL:          *verbose,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	start := time.Now()
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema up to date (%s, %v)", cfg.Database.Driver, time.Since(start).Round(time.Millisecond))

	if *seed {
		if err := migration.Seed(db); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Println("Seed complete")
	}
}
