package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/landhub/backoffice/internal/config"
	"github.com/landhub/backoffice/internal/database"
	"github.com/landhub/backoffice/internal/model"
)

// Reset tool for the back-office tables only:
// - Drops the project's tables, then optionally recreates them.
// - Never touches the database itself, users, or unrelated tables.
// Usage:
//
//	go run ./cmd/resetdb -force
//
// Flags:
//
//	-recreate  recreate tables after dropping (default true)
//	-force     must be set for anything to happen (safety switch)
func main() {
	recreate := flag.Bool("recreate", true, "recreate tables after dropping")
	force := flag.Bool("force", false, "confirm the destructive reset")
	flag.Parse()

	if !*force {
		log.Fatal("refusing to drop tables without -force: go run ./cmd/resetdb -force")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	m := db.Migrator()

	tables := []any{
		&model.Property{},
		&model.CatalogItem{},
		&model.Permission{},
		&model.Staff{},
	}

	fmt.Println("dropping back-office tables...")
	for _, t := range tables {
		if m.HasTable(t) {
			if err := m.DropTable(t); err != nil {
				log.Fatalf("drop table: %v", err)
			}
			fmt.Printf("dropped: %T\n", t)
		}
	}

	if *recreate {
		for _, t := range []any{
			&model.Staff{},
			&model.Permission{},
			&model.CatalogItem{},
			&model.Property{},
		} {
			if err := m.AutoMigrate(t); err != nil {
				log.Fatalf("create table: %v", err)
			}
			fmt.Printf("created: %T\n", t)
		}
	}

	fmt.Println("done.")
}
