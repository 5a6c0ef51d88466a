package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http" envPrefix:"BUS_HTTP_"`
	GRPC     GRPCConfig     `yaml:"grpc" envPrefix:"BUS_GRPC_"`
	Log      LogConfig      `yaml:"log" envPrefix:"BUS_LOG_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"BUS_DATABASE_"`
	Redis    RedisConfig    `yaml:"redis" envPrefix:"BUS_REDIS_"`
	Kafka    KafkaConfig    `yaml:"kafka" envPrefix:"BUS_KAFKA_"`
	Booking  BookingConfig  `yaml:"booking" envPrefix:"BUS_BOOKING_"`
	Meals    []MealConfig   `yaml:"meals"`
}

type HTTPConfig struct {
	Address     string `yaml:"address" env:"ADDRESS"`
	SwaggerFile string `yaml:"swagger_file" env:"SWAGGER_FILE"`
	StaticDir   string `yaml:"static_dir" env:"STATIC_DIR"`
}

// GRPCConfig is the listener of the gRPC health and reflection services.
type GRPCConfig struct {
	Address string `yaml:"address" env:"ADDRESS"`
}

type LogConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	Name     string `yaml:"name" env:"NAME"`
	SSLMode  string `yaml:"ssl_mode" env:"SSL_MODE"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) Enabled() bool { return d.Host != "" }

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" env:"BROKERS" envSeparator:","`
	BookingTopic       string   `yaml:"booking_topic" env:"BOOKING_TOPIC"`
	NotificationsTopic string   `yaml:"notifications_topic" env:"NOTIFICATIONS_TOPIC"`
	GroupID            string   `yaml:"group_id" env:"GROUP_ID"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type BookingConfig struct {
	SeatsCacheTTL int `yaml:"seats_cache_ttl_seconds" env:"SEATS_CACHE_TTL_SECONDS"`
}

type MealConfig struct {
	ID    int     `yaml:"id"`
	Name  string  `yaml:"name"`
	Type  string  `yaml:"type"`
	Price float64 `yaml:"price"`
}

// LoadConfig reads the YAML file at path, applies BUS_* environment
// overrides and fills defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8000"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9000"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = "bus.bookings"
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = "bus.notifications"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "bus-worker"
	}
	if c.Booking.SeatsCacheTTL == 0 {
		c.Booking.SeatsCacheTTL = 30
	}
	if len(c.Meals) == 0 {
		c.Meals = DefaultMeals()
	}
}

func DefaultMeals() []MealConfig {
	return []MealConfig{
		{ID: 1, Name: "Veg Thali", Type: "veg", Price: 150},
		{ID: 2, Name: "Chicken Biryani", Type: "non_veg", Price: 250},
		{ID: 3, Name: "Sandwich & Chips", Type: "snack", Price: 100},
	}
}
