package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	WeatherService WeatherConfig
	Email          EmailConfig
	Features       FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
}

type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type EmailConfig struct {
	APIKey       string
	FromName     string
	FromAddress  string
	ContactInbox string
}

type FeatureFlags struct {
	EnableCartCaching   bool
	EnableOrderEvents   bool
	ClearCartOnCheckout bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "acme"),
			Password:     getEnvString("DB_PASSWORD", "acme"),
			Name:         getEnvString("DB_NAME", "acme_storefront"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			OrdersTopic: getEnvString("KAFKA_ORDERS_TOPIC", "storefront.orders"),
		},
		WeatherService: WeatherConfig{
			BaseURL: getEnvString("WEATHER_API_URL", "https://api.weatherapi.com/v1"),
			APIKey:  getEnvString("WEATHER_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("WEATHER_API_TIMEOUT", 10)) * time.Second,
		},
		Email: EmailConfig{
			APIKey:       getEnvString("SENDGRID_API_KEY", ""),
			FromName:     getEnvString("EMAIL_FROM_NAME", "Acme Storefront"),
			FromAddress:  getEnvString("EMAIL_FROM_ADDRESS", "noreply@acme-shop.example"),
			ContactInbox: getEnvString("EMAIL_CONTACT_INBOX", "support@acme-shop.example"),
		},
		Features: FeatureFlags{
			EnableCartCaching:   getEnvBool("FEATURE_CART_CACHING", true),
			EnableOrderEvents:   getEnvBool("FEATURE_ORDER_EVENTS", true),
			ClearCartOnCheckout: getEnvBool("FEATURE_CLEAR_CART_ON_CHECKOUT", false),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
