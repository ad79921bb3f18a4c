package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Telegram TelegramConfig
	LLM      LLMConfig
	Sheets   SheetsConfig
}

// TelegramConfig holds chat-transport configuration
type TelegramConfig struct {
	BotToken    string
	PollTimeout int // long-poll timeout in seconds
}

// LLMConfig holds model endpoint configuration
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// SheetsConfig holds storage-sink configuration
type SheetsConfig struct {
	SpreadsheetID  string
	AppendRange    string
	CredentialsB64 string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollTimeout: getEnvAsInt("TELEGRAM_POLL_TIMEOUT", 30),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("DEEPSEEK_API_KEY", ""),
			BaseURL:     getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
			Model:       getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
			Temperature: getEnvAsFloat32("DEEPSEEK_TEMPERATURE", 0.0),
			MaxTokens:   getEnvAsInt("DEEPSEEK_MAX_TOKENS", 1000),
			Timeout:     getEnvAsDuration("DEEPSEEK_TIMEOUT", 45*time.Second),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:  getEnv("SPREADSHEET_ID", ""),
			AppendRange:    getEnv("SPREADSHEET_RANGE", "Data!A:A"),
			CredentialsB64: getEnv("GOOGLE_CREDENTIALS_B64", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration. Missing required values are
// fatal at startup, never per-request.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return ConfigurationError("TELEGRAM_BOT_TOKEN is required")
	}
	if c.LLM.APIKey == "" {
		return ConfigurationError("DEEPSEEK_API_KEY is required")
	}
	if c.Sheets.SpreadsheetID == "" {
		return ConfigurationError("SPREADSHEET_ID is required")
	}
	if c.Sheets.CredentialsB64 == "" {
		return ConfigurationError("GOOGLE_CREDENTIALS_B64 is required")
	}
	return nil
}
