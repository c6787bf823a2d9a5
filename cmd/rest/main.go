package main

import (
	"context"
	"log"

	"ask-backend/internal/bootstrap"
	"ask-backend/internal/config"
	"ask-backend/internal/server"
	"ask-backend/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	color.Cyan("ask-backend ready on port %s (env: %s)", cfg.App.Port, cfg.App.Environment)

	// 5. Run Server
	log.Fatal(srv.Run())
}
