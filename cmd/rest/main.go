package main

import (
	"context"
	"log"

	"teamchat-be/internal/bootstrap"
	"teamchat-be/internal/config"
	"teamchat-be/internal/server"
	"teamchat-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	if err := container.AuditService.Consume(context.Background()); err != nil {
		log.Printf("Background Audit Consumer Error: %v", err)
	}

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
