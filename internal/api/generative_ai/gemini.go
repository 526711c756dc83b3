package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

var _ Adapter = (*GeminiAdapter)(nil)

// GeminiAdapter uses constrained decoding: the shape is sent as the
// response schema.
type GeminiAdapter struct {
	client  *genai.Client
	initErr error
	cfg     AdapterConfig
	logger  *slog.Logger
}

func NewGeminiAdapter(ctx context.Context, cfg AdapterConfig, logger *slog.Logger) *GeminiAdapter {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	a := &GeminiAdapter{cfg: cfg, logger: logger}
	if cfg.APIKey == "" {
		a.initErr = errMissingKey
		return a
	}

	clientCfg := &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		a.initErr = fmt.Errorf("failed to create client: %w", err)
		return a
	}
	a.client = client
	return a
}

func (a *GeminiAdapter) ID() types.ProviderID { return types.ProviderGemini }

func (a *GeminiAdapter) Generate(ctx context.Context, prompt string, shape *genai.Schema) (string, error) {
	ctx, span := otel.Tracer("GeminiAdapter").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("llm.provider", a.ID().String()),
		attribute.String("llm.model", a.cfg.Model),
		attribute.Int("llm.prompt_length", len(prompt)),
	))
	defer span.End()

	if a.initErr != nil {
		kind := types.ProviderErrTransport
		if errors.Is(a.initErr, errMissingKey) {
			kind = types.ProviderErrAuth
		}
		err := types.NewProviderError(a.ID(), kind, a.initErr)
		span.RecordError(err)
		span.SetStatus(codes.Error, "adapter not initialised")
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.timeout())
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   shape,
	}
	result, err := a.client.Models.GenerateContent(ctx, a.cfg.Model, genai.Text(prompt), config)
	if err != nil {
		perr := classifyGeminiError(err)
		span.RecordError(perr)
		span.SetStatus(codes.Error, "generate content failed")
		return "", perr
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		err := types.NewProviderError(a.ID(), types.ProviderErrEmpty, errors.New("no response text from AI"))
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty response")
		return "", err
	}

	span.SetAttributes(attribute.Int("llm.response_length", len(text)))
	span.SetStatus(codes.Ok, "")
	return text, nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == "RESOURCE_EXHAUSTED" {
			return types.NewRateLimitError(types.ProviderGemini, err)
		}
		return classifyStatus(types.ProviderGemini, apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return classifyStatus(types.ProviderGemini, apiErrPtr.Code, err)
	}
	return classifyStatus(types.ProviderGemini, 0, err)
}
