// Command migrate runs schema operations for the backend.
//
// The server auto-migrates in non-production environments; production
// deployments run `migrate auto` explicitly before rolling out a new build.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"atelier/internal/config"
	"atelier/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "auto":
		if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
			return fmt.Errorf("auto migration failed: %w", err)
		}
		log.Println("automigrations applied")
	case "status":
		migrator := db.Migrator()
		missing := 0
		for _, model := range database.PersistentModels() {
			if migrator.HasTable(model) {
				log.Printf("ok: %T", model)
				continue
			}
			missing++
			log.Printf("missing: %T", model)
		}
		if missing > 0 {
			return fmt.Errorf("%d tables missing; run `migrate auto`", missing)
		}
		log.Println("schema up to date")
	default:
		return usage()
	}

	return nil
}
