package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "prod") // skip the .env file
	t.Setenv("SERVER_PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("ADMIN_USERNAME", "")

	cfg := LoadConfig()
	assert.Equal(t, ":3000", cfg.ServerPort)
	assert.Equal(t, "*", cfg.BaseURL)
	assert.Equal(t, "admin", cfg.AdminUsername)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("SERVER_PORT", ":8080")
	t.Setenv("DATABASE_DSN", "host=db user=app dbname=learning")
	t.Setenv("KAFKA_BROKER", "broker:9092")
	t.Setenv("KAFKA_TOPIC", "learning-events")
	t.Setenv("ACCESS_SECRET", "s3cret")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")

	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.ServerPort)
	assert.Equal(t, "host=db user=app dbname=learning", cfg.DatabaseDSN)
	assert.Equal(t, "broker:9092", cfg.KafkaBroker)
	assert.Equal(t, "learning-events", cfg.KafkaTopic)
	assert.Equal(t, "s3cret", cfg.AccessSecret)
	assert.Equal(t, "ops@example.com", cfg.AdminEmail)
}
