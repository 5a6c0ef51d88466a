package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTP.Address)
	assert.Equal(t, ":9000", cfg.GRPC.Address)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Booking.SeatsCacheTTL)
	assert.Equal(t, DefaultMeals(), cfg.Meals)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["localhost:9092"]
  booking_topic: "bookings"
database:
  host: "db"
  user: "bus"
  name: "bus"
meals:
  - id: 7
    name: "Masala Dosa"
    type: "veg"
    price: 120.5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bookings", cfg.Kafka.BookingTopic)
	assert.Equal(t, "bus.notifications", cfg.Kafka.NotificationsTopic)
	assert.Equal(t, "host=db port=5432 user=bus password= dbname=bus sslmode=disable", cfg.Database.DSN())
	require.Len(t, cfg.Meals, 1)
	assert.Equal(t, "Masala Dosa", cfg.Meals[0].Name)
	assert.Equal(t, 120.5, cfg.Meals[0].Price)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
`)
	t.Setenv("BUS_HTTP_ADDRESS", ":7070")
	t.Setenv("BUS_GRPC_ADDRESS", ":7071")
	t.Setenv("BUS_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("BUS_BOOKING_SEATS_CACHE_TTL_SECONDS", "5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Address)
	assert.Equal(t, ":7071", cfg.GRPC.Address)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.Booking.SeatsCacheTTL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "http: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")

	t.Setenv("BUS_REDIS_DB", "not-an-int")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "parse env:")
}
