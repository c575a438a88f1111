package main

import (
	"context"
	"log"

	"telemedicine-assistant-be/internal/bootstrap"
	"telemedicine-assistant-be/internal/config"
	"telemedicine-assistant-be/internal/server"
	"telemedicine-assistant-be/internal/tracer"
	"telemedicine-assistant-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	// Without a DSN the service keeps conversations in memory only.
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// Load the knowledge base in the background. Queries arriving before it
	// finishes get a loading notice instead of an answer.
	go func() {
		if err := container.LoadKnowledgeBase(cfg.Knowledge.Path); err != nil {
			log.Printf("Knowledge base unavailable: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
