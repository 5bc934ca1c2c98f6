package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"vitrine_server/api"
	"vitrine_server/config"
	"vitrine_server/database"
	"vitrine_server/storage"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init loads environment variables and initializes the logger and database
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}
}

func main() {
	// Setup graceful shutdown BEFORE starting the server
	setupGracefulShutdown(logger)

	store, err := storage.NewLocalStore(cfg.Storage.BasePath, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", gecho.Field("error", err))
	}

	r := api.App(store)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	if err := http.ListenAndServe(cfg.Server.Port, r); err != nil {
		logger.Error("Failed to start server", gecho.Field("error", err))
	}
}

// setupGracefulShutdown sets up signal handling for graceful application shutdown
func setupGracefulShutdown(logger *gecho.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig))
		if err := database.CloseInstance(); err != nil {
			logger.Warn("Failed to close database", gecho.Field("error", err))
		}
		os.Exit(0)
	}()
}
