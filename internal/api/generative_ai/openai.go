package generativeAI

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

var _ Adapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter talks to any OpenAI compatible chat completions API. The
// shape travels inside the prompt as indented JSON.
type OpenAIAdapter struct {
	id         types.ProviderID
	client     openai.Client
	cfg        AdapterConfig
	jsonObject bool
	logger     *slog.Logger
}

func NewOpenAIAdapter(cfg AdapterConfig, logger *slog.Logger) *OpenAIAdapter {
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	return newChatCompletionsAdapter(types.ProviderOpenAI, cfg, true, logger)
}

// NewGrokAdapter targets xAI. Grok does not get response_format and relies on
// fence stripping downstream.
func NewGrokAdapter(cfg AdapterConfig, logger *slog.Logger) *OpenAIAdapter {
	if cfg.Model == "" {
		cfg.Model = DefaultGrokModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGrokBaseURL
	}
	return newChatCompletionsAdapter(types.ProviderGrok, cfg, false, logger)
}

func newChatCompletionsAdapter(id types.ProviderID, cfg AdapterConfig, jsonObject bool, logger *slog.Logger) *OpenAIAdapter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.timeout()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIAdapter{
		id:         id,
		client:     openai.NewClient(opts...),
		cfg:        cfg,
		jsonObject: jsonObject,
		logger:     logger,
	}
}

func (a *OpenAIAdapter) ID() types.ProviderID { return a.id }

// SchemaPrompt appends the serialized shape to prompt.
func SchemaPrompt(prompt string, shape *genai.Schema) (string, error) {
	if shape == nil {
		return prompt, nil
	}
	b, err := json.MarshalIndent(shape, "", "  ")
	if err != nil {
		return "", err
	}
	return prompt + "\n\nOutput strictly in this JSON schema format:\n" + string(b), nil
}

func (a *OpenAIAdapter) Generate(ctx context.Context, prompt string, shape *genai.Schema) (string, error) {
	ctx, span := otel.Tracer("OpenAIAdapter").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("llm.provider", a.id.String()),
		attribute.String("llm.model", a.cfg.Model),
		attribute.Int("llm.prompt_length", len(prompt)),
	))
	defer span.End()

	if a.cfg.APIKey == "" {
		err := types.NewProviderError(a.id, types.ProviderErrAuth, errMissingKey)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing API key")
		return "", err
	}

	userPrompt, err := SchemaPrompt(prompt, shape)
	if err != nil {
		perr := types.NewProviderError(a.id, types.ProviderErrTransport, err)
		span.RecordError(perr)
		span.SetStatus(codes.Error, "failed to serialize shape")
		return "", perr
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	if a.jsonObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		perr := classifyOpenAIError(a.id, err)
		span.RecordError(perr)
		span.SetStatus(codes.Error, "chat completion failed")
		return "", perr
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		perr := types.NewProviderError(a.id, types.ProviderErrEmpty, errors.New("no content received"))
		span.RecordError(perr)
		span.SetStatus(codes.Error, "empty response")
		return "", perr
	}

	text := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.response_length", len(text)))
	span.SetStatus(codes.Ok, "")
	return text, nil
}

func classifyOpenAIError(id types.ProviderID, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return classifyStatus(id, apiErr.StatusCode, err)
	}
	return classifyStatus(id, 0, err)
}
