package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Keita-tri/my-transit-mcp/internal/config"
	httpDelivery "github.com/Keita-tri/my-transit-mcp/internal/delivery/http"
	"github.com/Keita-tri/my-transit-mcp/internal/delivery/http/handler"
	"github.com/Keita-tri/my-transit-mcp/internal/infrastructure/transitweb"
	"github.com/Keita-tri/my-transit-mcp/internal/pkg/logger"
	"github.com/Keita-tri/my-transit-mcp/internal/route"
	"github.com/Keita-tri/my-transit-mcp/internal/token"
	"github.com/Keita-tri/my-transit-mcp/internal/tools"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting transit tool server")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Build the process-wide tokenizer. Constructed once; read-only
	// afterwards, so concurrent tool invocations share it safely.
	counter, err := token.NewTiktokenCounter(cfg.Tokenizer.Encoding)
	if err != nil {
		log.Fatal("Failed to initialize tokenizer", zap.Error(err))
	}
	log.Info("Tokenizer initialized", zap.String("encoding", cfg.Tokenizer.Encoding))

	// 4. Transit site client
	fetcher := transitweb.NewClient(&cfg.Transit, log)

	// 5. Pipeline components
	parser := route.NewParser(log)
	truncator := route.NewTruncator(counter)

	// 6. Register tools explicitly
	registry := tools.NewRegistry()
	registry.Register(tools.NewStationTool(fetcher, counter, log).Definition())
	registry.Register(tools.NewRouteTool(fetcher, parser, truncator, log).Definition())
	log.Info("Tools registered", zap.Int("count", len(registry.List())))

	// 7. HTTP server
	toolsHandler := handler.NewToolsHandler(registry, log)
	server := httpDelivery.NewServer(cfg, log, toolsHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
