// Command init_graph bootstraps the application's graph namespace in the
// hosted memory store. Safe to run repeatedly: an existing graph is left
// untouched.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"mortgagemind/internal/config"
	"mortgagemind/internal/database/zep"
	"mortgagemind/internal/memory/gateway"
)

func main() {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	client, err := zep.GetClient(&cfg.Zep, cfg.Middleware.CircuitBreaker)
	if err != nil {
		log.Fatalf("failed to create store client: %v", err)
	}

	graphID := cfg.Zep.GraphID
	if graphID == "" {
		graphID = gateway.DefaultGraphID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = client.GetGraph(ctx, graphID)
	if err == nil {
		log.Printf("graph %q already exists", graphID)
		return
	}
	if !errors.Is(err, zep.ErrNotFound) {
		log.Fatalf("failed to check graph %q: %v", graphID, err)
	}

	if err := client.CreateGraph(ctx, graphID); err != nil {
		log.Fatalf("failed to create graph %q: %v", graphID, err)
	}
	log.Printf("graph %q created", graphID)
}
