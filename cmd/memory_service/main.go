package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"mortgagemind/internal/config"
	"mortgagemind/internal/database/kafka"
	"mortgagemind/internal/database/zep"
	"mortgagemind/internal/memory/api"
	"mortgagemind/internal/memory/consumer"
	"mortgagemind/internal/memory/gateway"
	"mortgagemind/internal/memory/service"
	"mortgagemind/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New("memory_service", "", "")

	// Initialize the graph store client. A missing API key is reported
	// per request, not at boot, so the service can start before the
	// credential is provisioned.
	zepClient, err := zep.GetClient(&cfg.Zep, cfg.Middleware.CircuitBreaker)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	// Initialize the gateway and service
	memoryGateway := gateway.NewZepGateway(zepClient, cfg.Zep.GraphID, appLogger)
	memoryService := service.NewMemoryService(memoryGateway, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the optional Kafka turn-ingestion consumer
	if len(cfg.Databases.Kafka.Brokers) > 0 {
		kafkaClient, err := kafka.GetClient(&cfg.Databases.Kafka)
		if err != nil {
			appLogger.Fatal(err.Error())
		}
		defer kafkaClient.Close()

		kafkaConsumer := consumer.NewKafkaConsumer(kafkaClient, memoryService, appLogger)
		kafkaConsumer.Start(ctx)
		appLogger.Info("kafka turn ingestion started")
	}

	// Set up the HTTP API
	handler := api.NewHandler(memoryService)
	router, err := api.SetupRouter(handler, cfg)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		appLogger.Info("memory service listening on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err.Error())
		}
	}()

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed: " + err.Error())
	}

	appLogger.Info("memory service stopped")
}
