package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type StoreConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	Backend string `yaml:"backend"` // "memory" or "redis"
	Expiry  string `yaml:"expiry"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type GeocoderConfig struct {
	BaseURL    string  `yaml:"base_url"`
	DefaultLat float64 `yaml:"default_lat"`
	DefaultLon float64 `yaml:"default_lon"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type DashboardConfig struct {
	PollInterval string `yaml:"poll_interval"`
}

type AdvanceConfig struct {
	RetryAttempts int    `yaml:"retry_attempts"`
	RetryBackoff  string `yaml:"retry_backoff"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Store     StoreConfig     `yaml:"store"`
	Session   SessionConfig   `yaml:"session"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Advance   AdvanceConfig   `yaml:"advance"`
}

type Config struct {
	Port           string
	GinMode        string
	StoreBaseURL   string
	StoreTimeout   time.Duration
	SessionBackend string
	SessionExpiry  time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	JWTSecret      string
	JWTIssuer      string
	GeocoderURL    string
	DefaultLat     float64
	DefaultLon     float64
	TwilioSID      string
	TwilioToken    string
	TwilioFrom     string
	PollInterval   time.Duration
	RetryAttempts  int
	RetryBackoff   time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and falls back to environment variables for
// every field the file leaves empty. A missing file is not an error; the
// service can run from environment alone.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	var file ConfigFile
	bytes, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(bytes, &file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	cfg := &Config{
		Port:           pick(strconv.Itoa(file.App.Port), "PORT", "8080"),
		GinMode:        pick(file.App.GinMode, "GIN_MODE", "release"),
		StoreBaseURL:   pick(file.Store.BaseURL, "STORE_BASE_URL", "http://localhost:3000"),
		SessionBackend: pick(file.Session.Backend, "SESSION_BACKEND", "memory"),
		RedisAddr:      pick(file.Redis.Addr, "REDIS_ADDR", "localhost:6379"),
		RedisPassword:  pick(file.Redis.Password, "REDIS_PASSWORD", ""),
		RedisDB:        file.Redis.DB,
		JWTSecret:      pick(file.JWT.Secret, "JWT_SECRET", ""),
		JWTIssuer:      pick(file.JWT.Issuer, "JWT_ISSUER", "reportesvc"),
		GeocoderURL:    pick(file.Geocoder.BaseURL, "GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		TwilioSID:      pick(file.Twilio.AccountSID, "TWILIO_ACCOUNT_SID", ""),
		TwilioToken:    pick(file.Twilio.AuthToken, "TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:     pick(file.Twilio.FromNumber, "TWILIO_FROM_NUMBER", ""),
	}

	if cfg.Port == "0" {
		cfg.Port = env("PORT", "8080")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required (config jwt.secret or JWT_SECRET)")
	}

	cfg.StoreTimeout, err = duration(pick(file.Store.Timeout, "STORE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}
	cfg.SessionExpiry, err = duration(pick(file.Session.Expiry, "SESSION_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid session expiry: %w", err)
	}
	cfg.PollInterval, err = duration(pick(file.Dashboard.PollInterval, "DASHBOARD_POLL_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid dashboard poll interval: %w", err)
	}
	cfg.RetryBackoff, err = duration(pick(file.Advance.RetryBackoff, "ADVANCE_RETRY_BACKOFF", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid advance retry backoff: %w", err)
	}

	cfg.RetryAttempts = file.Advance.RetryAttempts
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts, err = strconv.Atoi(env("ADVANCE_RETRY_ATTEMPTS", "3"))
		if err != nil {
			return nil, fmt.Errorf("invalid advance retry attempts: %w", err)
		}
	}

	// Barranquilla city center, the fallback coordinate when geocoding fails.
	cfg.DefaultLat = file.Geocoder.DefaultLat
	cfg.DefaultLon = file.Geocoder.DefaultLon
	if cfg.DefaultLat == 0 && cfg.DefaultLon == 0 {
		cfg.DefaultLat = 10.9685
		cfg.DefaultLon = -74.7813
	}

	return cfg, nil
}

func pick(fileValue, envKey, def string) string {
	if fileValue != "" {
		return fileValue
	}
	return env(envKey, def)
}

func duration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
