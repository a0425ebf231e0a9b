package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderCloudflare = "cloudflare"
	ProviderOpenAI     = "openai"
)

type Config struct {
	Server     ServerConfig
	Provider   string `env:"INFERENCE_PROVIDER" envDefault:"cloudflare"`
	Cloudflare CloudflareConfig
	OpenAI     OpenAIConfig
	Log        LogConfig

	// OutputSize is the fallback resolution when a request omits size.
	OutputSize string `env:"OUTPUT_SIZE" envDefault:"768x768"`
}

type ServerConfig struct {
	Port               string        `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout    time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes       int64         `env:"SERVER_MAX_BODY_BYTES" envDefault:"20971520"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type CloudflareConfig struct {
	AccountID string `env:"CF_ACCOUNT_ID"`
	APIToken  string `env:"CF_API_TOKEN"`
	BaseURL   string `env:"CF_BASE_URL" envDefault:"https://api.cloudflare.com/client/v4"`
	Model     string `env:"CF_MODEL" envDefault:"@cf/runwayml/stable-diffusion-v1-5-inpainting"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model   string `env:"OPENAI_MODEL" envDefault:"dall-e-2"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Model returns the model identifier of the selected provider.
func (c *Config) Model() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAI.Model
	}
	return c.Cloudflare.Model
}

// Validate checks the values the selected inference provider cannot run without.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderCloudflare:
		if c.Cloudflare.AccountID == "" {
			return fmt.Errorf("CF_ACCOUNT_ID is required for provider %q", c.Provider)
		}
		if c.Cloudflare.APIToken == "" {
			return fmt.Errorf("CF_API_TOKEN is required for provider %q", c.Provider)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("unknown inference provider {%s}", c.Provider)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("SERVER_MAX_BODY_BYTES must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}
