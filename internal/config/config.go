package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type SheetsConfig struct {
	SpreadsheetID string
	SecurityGID   string
	DriverGID     string
	StatusGID     string
	LogisticGID   string
	CacheTTL      time.Duration
	FetchTimeout  time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type YardConfig struct {
	Timezone string
	Products []string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Sheets      SheetsConfig
	Auth        AuthConfig
	Yard        YardConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: v.GetString("SHEETS_SPREADSHEET_ID"),
			SecurityGID:   v.GetString("SHEETS_SECURITY_GID"),
			DriverGID:     v.GetString("SHEETS_DRIVER_GID"),
			StatusGID:     v.GetString("SHEETS_STATUS_GID"),
			LogisticGID:   v.GetString("SHEETS_LOGISTIC_GID"),
			CacheTTL:      v.GetDuration("SHEETS_CACHE_TTL"),
			FetchTimeout:  v.GetDuration("SHEETS_FETCH_TIMEOUT"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Yard: YardConfig{
			Timezone: v.GetString("YARD_TIMEZONE"),
			Products: parseList(v.GetString("YARD_PRODUCTS")),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7093
	}
	if cfg.Sheets.CacheTTL == 0 {
		cfg.Sheets.CacheTTL = 15 * time.Second
	}
	if cfg.Sheets.FetchTimeout == 0 {
		cfg.Sheets.FetchTimeout = 30 * time.Second
	}
	if cfg.Yard.Timezone == "" {
		cfg.Yard.Timezone = "Asia/Phnom_Penh"
	}
	if len(cfg.Yard.Products) == 0 {
		cfg.Yard.Products = []string{"Pipe", "Coil", "Trading", "Roofing", "PU", "Other"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if _, err := time.LoadLocation(cfg.Yard.Timezone); err != nil {
		return fmt.Errorf("YARD_TIMEZONE %q is not a valid IANA zone: %w", cfg.Yard.Timezone, err)
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
