package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/maskpaint/inpaint-api/internal/config"
	"github.com/maskpaint/inpaint-api/internal/metrics"
	"github.com/maskpaint/inpaint-api/internal/models"
	"github.com/rs/zerolog"
)

// Runner performs one remote inference call. Backends live in package inference.
type Runner interface {
	Run(ctx context.Context, model string, inputs *models.InferenceInputs) (*models.InferenceResult, error)
}

type InpaintService struct {
	logger      zerolog.Logger
	runner      Runner
	provider    string
	model       string
	defaultSize string
	seeds       SeedFunc
}

func NewInpaintService(logger zerolog.Logger, runner Runner, cfg *config.Config) *InpaintService {
	return &InpaintService{
		logger:      logger,
		runner:      runner,
		provider:    cfg.Provider,
		model:       cfg.Model(),
		defaultSize: cfg.OutputSize,
		seeds:       RandomSeed,
	}
}

// SetSeedFunc replaces the random seed source.
func (s *InpaintService) SetSeedFunc(fn SeedFunc) {
	s.seeds = fn
}

func (s *InpaintService) Parse(contentType string, body io.Reader) (*models.InpaintRequest, error) {
	return ParseInpaintRequest(contentType, body, s.defaultSize)
}

func (s *InpaintService) Inpaint(ctx context.Context, req *models.InpaintRequest) (*models.InpaintResponse, error) {
	inputs := BuildInferenceInputs(req, s.seeds)

	log := s.logger.With().
		Str("provider", s.provider).
		Str("model", s.model).
		Str("size", inputs.ImageSize).
		Int64("seed", inputs.Seed).
		Logger()
	log.Info().
		Int("prompt_len", len(inputs.Prompt)).
		Float64("strength", inputs.Strength).
		Msg("inference start")

	start := time.Now()
	result, err := s.runner.Run(ctx, s.model, inputs)
	duration := time.Since(start)
	metrics.InferenceDuration(s.provider, duration)
	if err != nil {
		metrics.InferenceTotal(s.provider, metrics.OutcomeError)
		log.Error().Err(err).Dur("dur", duration).Msg("inference failed")
		return nil, err
	}

	image, err := NormalizeResult(result)
	if err != nil {
		metrics.InferenceTotal(s.provider, metrics.OutcomeUnexpected)
		var unexpected *UnexpectedResponseError
		if errors.As(err, &unexpected) {
			log.Warn().
				Str("content_type", unexpected.ContentType).
				Int("body_len", len(unexpected.Body)).
				Msg("unexpected model response")
		}
		return nil, err
	}

	metrics.InferenceTotal(s.provider, metrics.OutcomeOK)
	log.Info().Dur("dur", duration).Msg("inference done")
	return &models.InpaintResponse{Image: image}, nil
}
