package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/landhub/backoffice/internal/config"
	"github.com/landhub/backoffice/internal/database"
	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/repository"
	"github.com/landhub/backoffice/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: configs/config.yaml)")
	username := flag.String("username", "", "login username (required)")
	password := flag.String("password", "", "initial password (required)")
	fullName := flag.String("name", "", "full name")
	position := flag.String("position", model.PositionAdmin, "staff position")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintf(os.Stderr, "usage: create-staff -username <name> -password <pass> [-name <full name>] [-position <%s>]\n",
			strings.Join(model.Positions(), "|"))
		os.Exit(2)
	}

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

	if err := database.AutoMigrate(&model.Staff{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	staffRepo := repository.NewStaffRepository(database.GetDB())
	authService := service.NewAuthService(staffRepo)

	staff := &model.Staff{
		Username: *username,
		FullName: *fullName,
		Position: *position,
	}

	err = authService.CreateStaff(context.Background(), staff, *password)
	switch {
	case err == nil:
		log.Printf("created staff %q (%s) id=%s", staff.Username, staff.Position, staff.ID)
	case err == service.ErrUsernameExists:
		log.Fatalf("username %q already exists", *username)
	case err == service.ErrInvalidPosition:
		log.Fatalf("invalid position %q, valid positions: %s", *position, strings.Join(model.Positions(), ", "))
	default:
		log.Fatalf("create staff: %v", err)
	}
}
