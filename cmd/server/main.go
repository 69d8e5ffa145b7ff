package main

import (
	"log"
	"net/http"
	"os"

	"gardens/internal/config"
	"gardens/internal/db"
	"gardens/internal/http/router"
	"gardens/internal/security"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		log.Printf("Failed to load config: %v, using defaults", err)
		cfg = &config.Config{
			Port:     "8080",
			DBDriver: "sqlite3",
			DBDSN:    "gardens.db",
		}
	}

	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize session store
	sessionStore := security.NewSessionStore()

	// Setup router
	handler := router.Setup(database, sessionStore)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Starting server on port %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
