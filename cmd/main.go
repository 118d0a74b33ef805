package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-chatbot/internal/config"
	"restaurant-chatbot/internal/conversation"
	"restaurant-chatbot/internal/database"
	"restaurant-chatbot/internal/logger"
	"restaurant-chatbot/internal/messaging"
	"restaurant-chatbot/internal/metrics"
	"restaurant-chatbot/internal/pricing"
	"restaurant-chatbot/internal/services/chatbot"
	"restaurant-chatbot/internal/services/chatbot/transport"
)

func main() {
	// Parse command line flags
	var (
		configPath     = flag.String("config", "config.yaml", "Path to configuration file")
		port           = flag.Int("port", 3000, "HTTP port for health and metrics")
		prefetch       = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
		migrationsPath = flag.String("migrations", "migrations", "Path to SQL migration files")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.New("chatbot")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting chatbot service", requestID, map[string]interface{}{
		"port":     *port,
		"prefetch": *prefetch,
		"locale":   cfg.Bot.Locale,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, *port, *prefetch, *migrationsPath); err != nil {
		log.Error("service_failed", "Chatbot service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// run wires the collaborators and processes messages until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, port, prefetch int, migrationsPath string) error {
	requestID := logger.GenerateRequestID()

	// Initialize database
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize messaging
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	// Conversation store: Redis when configured, in-memory otherwise
	store, err := newConversationStore(ctx, cfg, log, requestID)
	if err != nil {
		return err
	}

	prices, err := pricing.NewFormatter(cfg.Bot.Locale)
	if err != nil {
		return fmt.Errorf("failed to create price formatter: %w", err)
	}

	storage := database.NewStorage(db, log)
	engine := chatbot.NewEngine(store, storage, storage, prices, log)

	publisher := messaging.NewPublisher(conn, log)
	handler := transport.NewHandler(engine, publisher, log)
	consumer := messaging.NewConsumer(conn, log, messaging.InboundQueue, "chatbot", prefetch)

	// Health and metrics endpoint
	server := metrics.NewServer(port, func(ctx context.Context) bool {
		return db.Ping(ctx) == nil && !conn.IsClosed()
	})

	go func() {
		log.Info("http_started", fmt.Sprintf("Health/metrics endpoint on port %d", port), requestID, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- consumer.StartConsuming(ctx, handler.HandleInbound)
	}()

	select {
	case <-ctx.Done():
	case err := <-consumeErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("consumer failed: %w", err)
		}
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// newConversationStore picks the store backend from configuration.
func newConversationStore(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) (conversation.Store, error) {
	if !cfg.Redis.Enabled {
		memStore := conversation.NewMemoryStore()
		metrics.RegisterConversationGauge(memStore.Len)
		return memStore, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis_connected", "Connected to Redis conversation store", requestID, map[string]interface{}{
		"addr":        cfg.Redis.Addr,
		"ttl_minutes": cfg.Redis.ConversationTTL,
	})

	ttl := time.Duration(cfg.Redis.ConversationTTL) * time.Minute
	return conversation.NewRedisStore(client, ttl), nil
}
