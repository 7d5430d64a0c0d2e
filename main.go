package main

import (
	"academy/config"
	"academy/database"
	"academy/payment"
	"academy/routers"
	"academy/storage"
	"academy/utils"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	database.ConnectDb()

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory %s: %v", cfg.UploadDir, err)
	}
	storage.Uploads = store

	payment.SetDefault(payment.NewProcessor(cfg.PaymentGatewayURL, cfg.PaymentGatewayKey))
	utils.InitMailer(cfg)

	reaper, err := utils.InitializeUploadReaper(cfg, store)
	if err != nil {
		log.Fatalf("Failed to schedule upload reaper: %v", err)
	}

	app := routers.NewApp(cfg)

	go func() {
		log.Printf("Server is running on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if reaper != nil {
		<-reaper.Stop().Done()
	}
	if sqlDB, err := database.Database.Db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
