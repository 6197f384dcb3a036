package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/driver"
	"github.com/lexbridge/lexbridge/internal/extract"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/platform/logger"
	"github.com/lexbridge/lexbridge/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	applyEnvOverrides(cfg)

	lg, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	var enricher *extract.Enricher
	if cfg.Enrichment.Enabled {
		client, err := llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			lg.Fatal("failed to initialize LLM client", "error", err)
		}
		enricher = extract.NewEnricher(client, cfg.Enrichment.Prompt, lg)
	}

	var sink *driver.GraphSink
	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, lg)
		if err != nil {
			lg.Fatal("failed to connect to Memgraph", "uri", cfg.Memgraph.URI, "error", err)
		}
		defer d.Close(context.Background())
		if err := d.BuildIndices(context.Background()); err != nil {
			lg.Warn("failed to build Memgraph indices", "error", err)
		}
		sink = driver.NewGraphSink(d)
	}

	srv := server.New(cfg, lg, enricher, sink)
	r := srv.SetupRouter()

	lg.Info("starting server", "port", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		lg.Fatal("server exited", "error", err)
	}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Memgraph.Password = v
	}
}
