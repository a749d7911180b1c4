package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"patient-companion/internal/config"
	"patient-companion/internal/core"
	"patient-companion/internal/db"
	httpserver "patient-companion/internal/http"
	"patient-companion/internal/llm"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Connect and verify the document store.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping mongodb: %v", err)
	}

	gateway := db.NewGateway(client.Database(cfg.Mongo.Database), logger)
	if err := gateway.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	resolver := core.NewResolver(gateway)
	intake := core.NewIntake(gateway, logger)
	search := llm.NewSearchClient(cfg.Search.APIKey, cfg.Search.BaseURL, cfg.Search.Model)

	srv := httpserver.NewServer(resolver, intake, gateway, search, logger)

	logger.Info("listening", "addr", cfg.Addr, "database", cfg.Mongo.Database)
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
