package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/skyfarehq/skyfare/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.NewConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "skyfare", cfg.Database.Name)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "", cfg.Database.Password)
	assert.Equal(t, 99, cfg.Database.MaxPoolConns)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 60*time.Second, cfg.Redis.CacheTTL)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "booking-events", cfg.Kafka.BookingsTopic)
	assert.Equal(t, "skyfare-worker", cfg.Kafka.GroupID)

	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)

	assert.Equal(t, 10*time.Minute, cfg.Worker.OrphanSweepInterval)
}

func TestNewConfigWithEnvVars(t *testing.T) {
	os.Clearenv()

	envVars := map[string]string{
		"SERVER_ADDRESS":        ":8080",
		"SERVER_WRITE_TIMEOUT":  "30s",
		"POSTGRES_HOST":         "db.example.com",
		"POSTGRES_PORT":         "5433",
		"POSTGRES_DB":           "testdb",
		"POSTGRES_USER":         "testuser",
		"POSTGRES_PASSWORD":     "testpass",
		"MAX_CONNS":             "50",
		"REDIS_ADDR":            "cache.example.com:6380",
		"REDIS_DB":              "2",
		"REDIS_CACHE_TTL":       "5m",
		"KAFKA_BROKERS":         "k1:9092,k2:9092",
		"KAFKA_BOOKINGS_TOPIC":  "events",
		"KAFKA_GROUP_ID":        "worker-1",
		"JWT_SECRET":            "supersecret",
		"TOKEN_TTL":             "30m",
		"ORPHAN_SWEEP_INTERVAL": "1h",
	}
	for k, v := range envVars {
		os.Setenv(k, v)
	}

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxPoolConns)
	assert.Equal(t, "cache.example.com:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "events", cfg.Kafka.BookingsTopic)
	assert.Equal(t, "supersecret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, time.Hour, cfg.Worker.OrphanSweepInterval)
}

func TestNewConfigRequiresJWTSecret(t *testing.T) {
	os.Clearenv()

	cfg, err := config.NewConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewConfigInvalidDuration(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("SERVER_WRITE_TIMEOUT", "not-a-duration")

	cfg, err := config.NewConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDatabaseDSN(t *testing.T) {
	dc := config.DatabaseConfig{
		Host:         "localhost",
		Port:         "5432",
		Name:         "skyfare",
		User:         "postgres",
		Password:     "secret",
		MaxPoolConns: 10,
	}

	assert.Equal(t,
		"host=localhost port=5432 dbname=skyfare user=postgres password=secret pool_max_conns=10",
		dc.DSN())
}
