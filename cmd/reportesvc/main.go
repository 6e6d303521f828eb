package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/CamiloBytes/reportesvc/internal/app"
	"github.com/CamiloBytes/reportesvc/internal/config"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
