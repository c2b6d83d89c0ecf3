package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/config"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/generation"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/logger"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/metrics"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/redact"
	"google.golang.org/genai"
)

const responseMIMEType = "application/json"

// Generator implements generation.JSONGenerator with the Gemini API.
type Generator struct {
	// logger is used when the request context carries none
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client is nil when no API key is configured
	client *genai.Client
}

var _ generation.JSONGenerator = (*Generator)(nil)

// NewGenerator builds a Generator from cfg.
//
// An empty API key is not an error here so that the process can still serve
// health checks; every GenerateJSON call then fails with
// generation.ErrInvalidConfig.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	g := &Generator{logger: logger, config: cfg}
	if cfg.GeminiAPIKey == "" {
		logger.WarnContext(ctx, "Gemini API key is not configured; generation requests will fail")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	g.client = client

	logger.InfoContext(ctx, "Gemini generator initialized",
		"model", cfg.ModelName,
		"temperature", cfg.Temperature,
		"request_timeout", cfg.RequestTimeout().String())
	return g, nil
}

// GenerateJSON sends req.Prompt to the model with req.Schema as the response
// schema and returns the cleaned JSON text. ctx cancels the call; when a
// request timeout is configured it also bounds it.
func (g *Generator) GenerateJSON(ctx context.Context, req generation.Request) (json.RawMessage, error) {
	log := logger.FromContextOrDefault(ctx, g.logger).With(
		"llm_kind", string(req.Kind),
		"model", g.config.ModelName)

	start := time.Now()
	raw, err := g.generate(ctx, log, req)
	elapsed := time.Since(start)

	status := callStatus(err)
	metrics.LLMCallTotal.WithLabelValues(string(req.Kind), status).Inc()
	if status != metrics.LLMStatusConfigError {
		metrics.LLMCallDuration.WithLabelValues(string(req.Kind)).Observe(elapsed.Seconds())
	}

	if err != nil {
		log.ErrorContext(ctx, "Gemini call failed",
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"error", redact.Error(err))
		return nil, err
	}

	log.InfoContext(ctx, "Gemini call succeeded",
		"duration_ms", elapsed.Milliseconds(),
		"response_bytes", len(raw))
	return raw, nil
}

func (g *Generator) generate(ctx context.Context, log *slog.Logger, req generation.Request) (json.RawMessage, error) {
	if g.client == nil {
		return nil, fmt.Errorf("%w: gemini API key is not configured", generation.ErrInvalidConfig)
	}

	if timeout := g.config.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.DebugContext(ctx, "Calling Gemini", "prompt_length", len(req.Prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.config.ModelName, genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(g.config.Temperature),
			ResponseMIMEType: responseMIMEType,
			ResponseSchema:   req.Schema,
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrServiceFailure, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", generation.ErrServiceFailure)
	}

	recordUsage(req.Kind, resp.UsageMetadata)

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, fb.BlockReason)
	}
	if len(resp.Candidates) > 0 && isBlocked(resp.Candidates[0].FinishReason) {
		return nil, fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, resp.Candidates[0].FinishReason)
	}

	text := CleanResponseText(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrMalformedResponse)
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("%w: response is not valid JSON (%d bytes)", generation.ErrMalformedResponse, len(text))
	}
	return json.RawMessage(text), nil
}

func isBlocked(reason genai.FinishReason) bool {
	switch reason {
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		return true
	default:
		return false
	}
}

func recordUsage(kind generation.ContentKind, usage *genai.GenerateContentResponseUsageMetadata) {
	if usage == nil {
		return
	}
	metrics.LLMTokensUsed.WithLabelValues(string(kind), "prompt").Add(float64(usage.PromptTokenCount))
	metrics.LLMTokensUsed.WithLabelValues(string(kind), "completion").Add(float64(usage.CandidatesTokenCount))
}

func callStatus(err error) string {
	switch {
	case err == nil:
		return metrics.LLMStatusOK
	case errors.Is(err, generation.ErrInvalidConfig):
		return metrics.LLMStatusConfigError
	case errors.Is(err, generation.ErrContentBlocked):
		return metrics.LLMStatusBlocked
	case errors.Is(err, generation.ErrMalformedResponse):
		return metrics.LLMStatusMalformedJSON
	default:
		return metrics.LLMStatusServiceError
	}
}
