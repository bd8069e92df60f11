package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"learntechnotes-backend/internal/client"
	"learntechnotes-backend/internal/config"
	"learntechnotes-backend/internal/repository"
	"learntechnotes-backend/internal/server"
	"learntechnotes-backend/internal/service"
	"learntechnotes-backend/internal/token"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)

	courseRepo := repository.NewCourseRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	if err := courseRepo.Seed(context.Background()); err != nil {
		log.Fatal("seed course catalog:", err)
	}

	tokenStore := token.NewStore()

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	startTokenSweeper(sweepCtx, tokenStore, cfg.Download.SweepInterval)

	checkoutService := service.NewCheckoutService(
		razorpayClient,
		tokenStore,
		courseRepo,
		orderRepo,
		paymentRepo,
		cfg.BaseURL,
		cfg.Download.TokenTTL,
	)
	catalogService := service.NewCatalogService(courseRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(checkoutService, catalogService)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
