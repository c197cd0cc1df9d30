package main

import (
	"context"
	"log"

	"notevault-be/internal/bootstrap"
	"notevault-be/internal/config"
	"notevault-be/internal/server"
	"notevault-be/internal/tracer"
	"notevault-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	db, disconnect, err := database.NewMongoDatabase(context.Background(), cfg.Database.MongoURI, cfg.Database.MongoDatabase)
	if err != nil {
		log.Panicf("Unable to connect to MongoDB: %v", err)
	}
	defer disconnect(context.Background())

	color.Green("✅ Connected to MongoDB (%s)", cfg.Database.MongoDatabase)

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(db, cfg)
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
