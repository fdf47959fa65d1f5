package ai

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"

	"advisor/internal/adapters/config"
	"advisor/pkg/errors"
	"advisor/pkg/logger"
)

// ProviderNameOpenAI identifies the OpenAI chat backend.
const ProviderNameOpenAI = "openai"

// Ensure OpenAIProvider implements ChatProvider
var _ ChatProvider = (*OpenAIProvider)(nil)

// OpenAIProvider implements chat completions using the official OpenAI Go SDK
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
	timeout     time.Duration
	limiter     *rate.Limiter
	log         *logger.Logger
}

// NewOpenAIProvider creates a new OpenAI chat provider
func NewOpenAIProvider(cfg config.AIConfig) (*OpenAIProvider, error) {
	if cfg.OpenAIKey == "" {
		return nil, errors.Wrap(errors.ErrProviderNotConfigured, "OPENAI_API_KEY is not set")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	rpm := cfg.ReqPerMinute
	if rpm <= 0 {
		rpm = 500
	}
	burst := rpm / 10
	if burst < 1 {
		burst = 1
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIKey),
	)

	return &OpenAIProvider{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		limiter:     rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst),
		log:         logger.Get().With("component", "openai_chat", "model", cfg.Model),
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string { return ProviderNameOpenAI }

// Chat sends a chat completion request to the OpenAI API.
func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.temperature
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	start := time.Now()
	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errors.Wrap(errors.ErrExternal, err.Error())
	}

	if len(completion.Choices) == 0 {
		return nil, errors.Wrap(errors.ErrExternal, "openai returned no choices")
	}

	resp := &ChatResponse{
		ID:      completion.ID,
		Model:   completion.Model,
		Content: completion.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}

	p.log.Debugf("Chat completion finished (tokens: %d, duration: %v)",
		resp.Usage.TotalTokens, time.Since(start))

	return resp, nil
}
