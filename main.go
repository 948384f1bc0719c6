package main

import (
	"fmt"
	"log"

	"github.com/ar363/restaurant-live-ordering/configs"
	"github.com/ar363/restaurant-live-ordering/middlewares"
	"github.com/ar363/restaurant-live-ordering/routes"
	"github.com/ar363/restaurant-live-ordering/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedStaff(); err != nil {
		log.Fatalf("seed staff failed: %v", err)
	}
	if err := configs.SeedDemoData(); err != nil {
		log.Fatalf("seed demo data failed: %v", err)
	}

	// Ephemeral store (redis หรือ in-memory)
	store := configs.ConnectKV(cfg)

	// ✅ Realtime hub
	hub := ws.NewHub()
	go hub.Run()

	// HTTP
	r := gin.Default()

	// ✅ Enable CORS
	r.Use(middlewares.CORSMiddleware())

	// ✅ Register API routes
	routes.RegisterRoutes(r, db, store, hub, cfg)

	// ✅ Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
