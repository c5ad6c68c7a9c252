package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig     `toml:"app"`
	LLM     LLMConfig     `toml:"llm"`
	OCR     OCRConfig     `toml:"ocr"`
	Upload  UploadConfig  `toml:"upload"`
	Session SessionConfig `toml:"session"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type LLMConfig struct {
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	// ContextWindow is the assumed context ceiling used for usage-percentage
	// reporting only. Requests are never blocked for exceeding it.
	ContextWindow int `toml:"context_window"`
}

type OCRConfig struct {
	APIURL         string `toml:"api_url"`
	APIKey         string `toml:"api_key"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type UploadConfig struct {
	MaxPDFMB     int   `toml:"max_pdf_mb"`
	MinFileBytes int64 `toml:"min_file_bytes"`
}

type SessionConfig struct {
	TimeoutMinutes       int `toml:"timeout_minutes"`
	SweepIntervalMinutes int `toml:"sweep_interval_minutes"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MaxPDFBytes() int64 {
	return int64(c.Upload.MaxPDFMB) << 20
}

func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Session.TimeoutMinutes) * time.Minute
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Session.SweepIntervalMinutes) * time.Minute
}

func (c *Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCR.TimeoutSeconds) * time.Second
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "pdfchat",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		LLM: LLMConfig{
			BaseURL:       "https://generativelanguage.googleapis.com/v1beta/openai",
			APIKey:        "",
			Model:         "gemini-2.0-flash",
			Temperature:   0.7,
			MaxTokens:     8192,
			ContextWindow: 1_000_000,
		},
		OCR: OCRConfig{
			APIURL:         "https://api.ocr.space/parse/image",
			APIKey:         "",
			Language:       "eng",
			TimeoutSeconds: 60,
		},
		Upload: UploadConfig{
			MaxPDFMB:     10,
			MinFileBytes: 100,
		},
		Session: SessionConfig{
			TimeoutMinutes:       30,
			SweepIntervalMinutes: 5,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Temperature = getEnvAsFloat("LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.MaxTokens = getEnvAsInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.LLM.ContextWindow = getEnvAsInt("LLM_CONTEXT_WINDOW", cfg.LLM.ContextWindow)

	cfg.OCR.APIURL = getEnv("OCR_API_URL", cfg.OCR.APIURL)
	cfg.OCR.APIKey = getEnv("OCR_API_KEY", cfg.OCR.APIKey)
	cfg.OCR.Language = getEnv("OCR_LANGUAGE", cfg.OCR.Language)
	cfg.OCR.TimeoutSeconds = getEnvAsInt("OCR_TIMEOUT_SECONDS", cfg.OCR.TimeoutSeconds)

	cfg.Upload.MaxPDFMB = getEnvAsInt("UPLOAD_MAX_PDF_MB", cfg.Upload.MaxPDFMB)
	cfg.Upload.MinFileBytes = int64(getEnvAsInt("UPLOAD_MIN_FILE_BYTES", int(cfg.Upload.MinFileBytes)))

	cfg.Session.TimeoutMinutes = getEnvAsInt("SESSION_TIMEOUT_MINUTES", cfg.Session.TimeoutMinutes)
	cfg.Session.SweepIntervalMinutes = getEnvAsInt("SESSION_SWEEP_INTERVAL_MINUTES", cfg.Session.SweepIntervalMinutes)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
