// Package inference talks to the hosted inpainting models. Each backend takes
// the same InferenceInputs and hands back the raw upstream answer; shaping that
// answer for clients is left to the caller.
package inference

import (
	"fmt"
	"net/http"

	"github.com/maskpaint/inpaint-api/internal/config"
	"github.com/maskpaint/inpaint-api/internal/service"
	"github.com/rs/zerolog"
)

var (
	_ service.Runner = (*CloudflareRunner)(nil)
	_ service.Runner = (*OpenAIRunner)(nil)
)

// New builds the runner for the configured provider.
func New(cfg *config.Config, logger zerolog.Logger) (service.Runner, error) {
	switch cfg.Provider {
	case config.ProviderCloudflare:
		return NewCloudflareRunner(cfg.Cloudflare, http.DefaultClient), nil
	case config.ProviderOpenAI:
		return NewOpenAIRunner(cfg.OpenAI, http.DefaultClient, logger), nil
	default:
		return nil, fmt.Errorf("unsupported inference provider {%s}", cfg.Provider)
	}
}
