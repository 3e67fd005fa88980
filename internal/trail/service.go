package trail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	redislib "github.com/redis/go-redis/v9"

	"github.com/sharkleaf/backend/pkg/config"
	pkgerrors "github.com/sharkleaf/backend/pkg/errors"
	"github.com/sharkleaf/backend/pkg/logger"
)

// Prompt shown to the model, kept in pt-BR because the tracking page renders
// the answer verbatim to Brazilian customers.
const speciesPrompt = `Você é um assistente especialista em botânica e silvicultura.
Forneça informações breves e educativas sobre a seguinte espécie de planta/muda: "%s".

Inclua:
1. Nome científico
2. Família botânica
3. Características principais (altura, folhas, etc)
4. Usos comuns (madeira, celulose, reflorestamento, etc)
5. Tempo médio de crescimento
6. Curiosidade interessante

Responda de forma objetiva e didática, em no máximo 200 palavras. Em português do Brasil.`

const cacheScope = "trail"

// Result is what the tracking page renders. Available is false whenever the
// answer is a fallback rather than model output.
type Result struct {
	Info      string `json:"info"`
	Available bool   `json:"available"`
}

type completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(scope, id string) string
}

// Service answers species-information lookups for the tracking page.
type Service interface {
	Lookup(ctx context.Context, productName string) (*Result, error)
}

type service struct {
	completer completer
	cache     cache
	log       *logger.Logger
	model     string
	cacheTTL  time.Duration
}

type openAICompleter struct {
	client openai.Client
}

func (c openAICompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	userMessage := openai.ChatCompletionUserMessageParam{
		Content: openai.ChatCompletionUserMessageParamContentUnion{
			OfString: openai.String(prompt),
		},
	}
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{OfUser: &userMessage},
		},
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// NewService builds the lookup service. An empty API key is allowed; lookups
// then always return the fallback answer.
func NewService(openAICfg config.OpenAIConfig, trailCfg config.TrailConfig, store cache, log *logger.Logger) (Service, error) {
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	svc := &service{
		cache:    store,
		log:      log,
		model:    openAICfg.Model,
		cacheTTL: trailCfg.CacheTTL,
	}
	if strings.TrimSpace(openAICfg.APIKey) != "" {
		svc.completer = openAICompleter{client: openai.NewClient(option.WithAPIKey(openAICfg.APIKey))}
	}
	return svc, nil
}

func (s *service) Lookup(ctx context.Context, productName string) (*Result, error) {
	name := strings.TrimSpace(productName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}

	if s.completer == nil {
		return &Result{
			Info:      fmt.Sprintf("Informações da IA não disponíveis no momento para %q.", name),
			Available: false,
		}, nil
	}

	cacheKey := ""
	if s.cache != nil {
		cacheKey = s.cache.CacheKey(cacheScope, normalizeName(name))
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return &Result{Info: cached, Available: true}, nil
		} else if err != nil && err != redislib.Nil {
			s.log.Warn(ctx, "trail cache read failed: "+err.Error())
		}
	}

	answer, err := s.completer.Complete(ctx, s.model, fmt.Sprintf(speciesPrompt, name))
	if err != nil {
		s.log.Error(ctx, "species lookup failed", err)
		return &Result{
			Info:      fmt.Sprintf("Não foi possível obter as informações sobre %q neste momento.", name),
			Available: false,
		}, nil
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return &Result{
			Info:      fmt.Sprintf("Não foi possível obter as informações sobre %q neste momento.", name),
			Available: false,
		}, nil
	}

	if s.cache != nil && cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, answer, s.cacheTTL); err != nil {
			s.log.Warn(ctx, "trail cache write failed: "+err.Error())
		}
	}

	return &Result{Info: answer, Available: true}, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
