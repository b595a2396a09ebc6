package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values. It is built once at
// startup and passed by reference into each component's constructor; nothing
// outside this package mutates it afterwards.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBPath  string `json:"dbpath"`

	// Ingestion: empty APIKey disables the x-api-key check (open ingestion).
	APIKey string `json:"apikey"`

	// Fallback coordinates used when a device omits its location.
	ServerLat float64 `json:"serverlat"`
	ServerLng float64 `json:"serverlng"`

	// Outbound SMS channel. Any empty value disables dispatch.
	TwilioSID   string `json:"twiliosid"`
	TwilioToken string `json:"twiliotoken"`
	TwilioFrom  string `json:"twiliofrom"`
	AlertTo     string `json:"alertto"`

	// Token signing secret for the auth gate.
	JWTSecret string `json:"jwtsecret"`

	// Optional Redis for auth-endpoint rate limiting.
	RedisAddr string `json:"redisaddr"`
	RedisPass string `json:"redispass"`
	RedisDB   int    `json:"redisdb"`
}

var config *Config
var once sync.Once

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v", key, value, fallback)
		return fallback
	}
	return f
}

// LoadConfig loads the environment variables from a .env file when present,
// and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine; the environment itself still applies.
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, reading configuration from environment")
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "3000"), 10, 16)
		redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

		config = &Config{
			AppName:     getEnv("APPNAME", "smartBliendStick"),
			AppEnv:      os.Getenv("APPENV"),
			AppPort:     uint16(appPort),
			GinMode:     getEnv("GINMODE", "debug"),
			DBPath:      getEnv("DBPATH", "data/events.db"),
			APIKey:      os.Getenv("API_KEY"),
			ServerLat:   getEnvFloat("SERVER_LAT", 13.2180),
			ServerLng:   getEnvFloat("SERVER_LNG", 75.0060),
			TwilioSID:   os.Getenv("TWILIO_SID"),
			TwilioToken: os.Getenv("TWILIO_TOKEN"),
			TwilioFrom:  os.Getenv("TWILIO_FROM"),
			AlertTo:     os.Getenv("ALERT_TO"),
			JWTSecret:   os.Getenv("JWTSECRET"),
			RedisAddr:   os.Getenv("REDIS_ADDR"),
			RedisPass:   os.Getenv("REDIS_PASS"),
			RedisDB:     redisDB,
		}
	})
	return config
}

// NotificationConfigured reports whether the outbound SMS channel has a full
// set of credentials. Absence disables dispatch, it is not fatal.
func (c *Config) NotificationConfigured() bool {
	return c.TwilioSID != "" && c.TwilioToken != "" && c.TwilioFrom != "" && c.AlertTo != ""
}

// ConnectSQLite opens the embedded event database for the given configuration.
// Appends are single atomic inserts, so concurrent writers cannot drop each
// other's updates the way a whole-file rewrite would.
func ConnectSQLite(cfg *Config) (*gorm.DB, error) {
	path := cfg.DBPath
	if path == "" {
		path = "data/events.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	return db, nil
}
