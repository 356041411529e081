// @title Study Diagnostic API
// @version 1.0
// @description Backend for the learning-skills diagnostic questionnaire.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"study_diagnostic_backend/internal/app"
	"study_diagnostic_backend/internal/config"
)

func main() {
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg, *configPath)
	application.Run()
}
