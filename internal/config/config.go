package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// devSessionSecret is only accepted when APP_ENV is "development".
const devSessionSecret = "signin-development-session-secret"

// Provider exposes application settings to the rest of the program.
type Provider interface {
	GetServerAddr() string
	GetSessionSecret() string
	GetLoginDelay() time.Duration
	GetSimulateFailure() bool
	GetStaticDir() string
	GetAppEnv() string
	IsDevelopment() bool
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr      string
	SessionSecret   string
	LoginDelay      time.Duration
	SimulateFailure bool
	StaticDir       string
	AppEnv          string
}

// New loads configuration from a .env file (if present) and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := Load()
	if cfg.SessionSecret == "" {
		log.Fatal("Required environment variable SESSION_SECRET is not set.")
	}
	return cfg
}

// Load builds a Config from the current environment without reading .env
// and without exiting on missing values.
func Load() *Config {
	cfg := &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		StaticDir:     os.Getenv("STATIC_DIR"),
		AppEnv:        getEnv("APP_ENV", "development"),
		LoginDelay:    1 * time.Second,
	}

	if v := os.Getenv("LOGIN_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.LoginDelay = d
		} else {
			log.Printf("Ignoring invalid LOGIN_DELAY %q", v)
		}
	}

	if v := os.Getenv("LOGIN_SIMULATE_FAILURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SimulateFailure = b
		}
	}

	if cfg.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.SessionSecret = devSessionSecret
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetServerAddr() string        { return c.ServerAddr }
func (c *Config) GetSessionSecret() string     { return c.SessionSecret }
func (c *Config) GetLoginDelay() time.Duration { return c.LoginDelay }
func (c *Config) GetSimulateFailure() bool     { return c.SimulateFailure }
func (c *Config) GetStaticDir() string         { return c.StaticDir }
func (c *Config) GetAppEnv() string            { return c.AppEnv }
func (c *Config) IsDevelopment() bool          { return c.AppEnv == "development" }
