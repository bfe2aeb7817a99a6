// cmd/stubserver/main.go
package main

import (
	"tailorpro/app"
	"tailorpro/config"
	"tailorpro/logger"
)

// @title           TailorPro stand-in API
// @version         1.0
// @description     In-memory stand-in for the TailorPro Drupal JSON:API and OAuth endpoints.

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	if err := config.LoadConfig("."); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := logger.SetLevel(config.AppConfig.Log.Level); err != nil {
		logger.Log.WithError(err).Warn("Unknown log level, keeping info")
	}
	logger.Log.Info("Configuration loaded successfully")

	app.RunServer()
}
