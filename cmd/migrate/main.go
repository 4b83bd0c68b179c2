package main

import (
	"flag"
	"log"

	"github.com/landhub/backoffice/internal/config"
	"github.com/landhub/backoffice/internal/database"
	"github.com/landhub/backoffice/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: configs/config.yaml)")
	seed := flag.Bool("seed", false, "install default permissions and catalog values after migrating")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	log.Println("running migrations...")
	if err := database.AutoMigrate(
		&model.Staff{},
		&model.Permission{},
		&model.CatalogItem{},
		&model.Property{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migrations complete")

	if *seed {
		if err := seedDefaults(database.GetDB()); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Println("seed data installed")
	}
}

// seedDefaults installs the default permission matrix and catalog values.
// Existing rows are left alone, so re-running is safe.
func seedDefaults(db *gorm.DB) error {
	perms := model.DefaultPermissions()
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "position"}, {Name: "resource"}, {Name: "action"}},
		DoNothing: true,
	}).Create(&perms).Error
	if err != nil {
		return err
	}
	log.Printf("seeded %d permission rows", len(perms))

	seeded := 0
	for _, item := range model.DefaultCatalogItems() {
		var count int64
		err := db.Model(&model.CatalogItem{}).
			Where("type = ? AND value = ? AND is_active = ?", item.Type, item.Value, true).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		var maxOrder int
		err = db.Model(&model.CatalogItem{}).
			Where("type = ? AND is_active = ?", item.Type, true).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		row := item
		row.IsActive = true
		row.DisplayOrder = maxOrder + 1
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		seeded++
	}
	log.Printf("seeded %d catalog items", seeded)

	return nil
}
