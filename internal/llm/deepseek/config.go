package deepseek

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the DeepSeek client. The API is OpenAI-compatible, so only the
// base URL and model name distinguish it from any chat/completions endpoint.
type Config struct {
	APIKey      string  // if empty, falls back to env DEEPSEEK_API_KEY
	BaseURL     string  // default https://api.deepseek.com/v1
	Model       string  // e.g., "deepseek-chat"
	Temperature float32 // 0 = greedy decoding, keeps responses reproducible
	MaxTokens   int     // output-length cap; keeps responses short
	Timeout     time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
