package main

import (
	"context"
	"log"

	"ai-chat-be/internal/bootstrap"
	"ai-chat-be/internal/config"
	"ai-chat-be/internal/server"
	"ai-chat-be/internal/tracer"
	"ai-chat-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	if err := container.ActivityService.Consume(context.Background()); err != nil {
		log.Printf("Background activity consumer error: %v", err)
	}

	// 5. Initialize and run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
