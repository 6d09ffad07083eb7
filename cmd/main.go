package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freshtrack-backend/cmd/config"
	migration "freshtrack-backend/cmd/database/migrate"
	"freshtrack-backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get database handle: %v", err)
	}
	defer sqlDB.Close()

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, closeCache := config.ConnectCache(context.Background())
	defer func() {
		if err := closeCache(); err != nil {
			log.Warnw("failed to close cache", "error", err)
		}
	}()

	app, accessLog, err := config.NewApp(db, store)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}
	defer accessLog.Close()

	addr := ":" + utils.GetConfigDefault("APP_PORT", "8000")
	go func() {
		if err := app.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped", "error", err)
		}
	}()
	log.Infow("server started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}
