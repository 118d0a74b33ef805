package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ConfigYAML(t *testing.T) {
	path := writeConfig(t, `
# test configuration
database:
  host: localhost
  port: 5432
  user: postgres
  password: secret
  database: restaurant

rabbitmq:
  host: localhost
  port: 5672
  user: guest
  password: guest

redis:
  enabled: true
  addr: localhost:6379
  db: 0
  conversation_ttl_minutes: 30

bot:
  locale: en-CO
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host != "localhost" {
		t.Fatalf("expected database.host to be set, got %q", cfg.Database.Host)
	}
	if cfg.RabbitMQ.Port != 5672 {
		t.Fatalf("expected rabbitmq.port 5672, got %d", cfg.RabbitMQ.Port)
	}
	if !cfg.Redis.Enabled {
		t.Fatalf("expected redis.enabled to be true")
	}
	if cfg.Redis.ConversationTTL != 30 {
		t.Fatalf("expected conversation_ttl_minutes 30, got %d", cfg.Redis.ConversationTTL)
	}
	if cfg.Bot.Locale != "en-CO" {
		t.Fatalf("expected bot.locale en-CO, got %q", cfg.Bot.Locale)
	}
}

func TestLoad_DefaultsAndURLs(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db
  port: 5432
  user: app
  password: pw
  database: orders

rabbitmq:
  host: mq
  port: 5672
  user: app
  password: pw
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Bot.Locale != "en-CO" {
		t.Fatalf("expected default locale en-CO, got %q", cfg.Bot.Locale)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("expected redis disabled by default")
	}
	if got := cfg.DatabaseURL(); got != "postgres://app:pw@db:5432/orders?sslmode=disable" {
		t.Fatalf("unexpected database url: %s", got)
	}
	if got := cfg.RabbitMQURL(); got != "amqp://app:pw@mq:5672/" {
		t.Fatalf("unexpected rabbitmq url: %s", got)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db
  port: 5432
  user: app
  password: from-file
  database: orders
`)

	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Password != "from-env" {
		t.Fatalf("expected env override to win, got %q", cfg.Database.Password)
	}
}
