package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "당신은 한국 오픈마켓 상품 등록 전문가입니다. 요청한 결과만 출력하고 설명은 붙이지 마세요."

type Credential struct {
	APIKey string `json:"api_key"`
}

type IntegrationDependencies struct {
	Credential  Credential
	Model       string
	BaseURL     string
	Timeout     time.Duration
	NameSpec    PromptSpec
	RelatedSpec PromptSpec
}

// Integration asks an OpenAI-compatible chat service for listing names and
// related search terms. Missing credentials, transport errors and empty
// responses all degrade to the deterministic template fallbacks, so callers
// always get a usable value.
type Integration struct {
	client      *openai.Client
	model       string
	timeout     time.Duration
	nameSpec    PromptSpec
	relatedSpec PromptSpec
}

func NewIntegration(deps IntegrationDependencies) *Integration {
	i := &Integration{
		model:       deps.Model,
		timeout:     deps.Timeout,
		nameSpec:    deps.NameSpec,
		relatedSpec: deps.RelatedSpec,
	}
	if i.model == "" {
		i.model = openai.GPT4oMini
	}
	if i.timeout == 0 {
		i.timeout = 10 * time.Second
	}
	if i.nameSpec.Kind == "" {
		i.nameSpec = NameSpec()
	}
	if i.relatedSpec.Kind == "" {
		i.relatedSpec = RelatedSpec()
	}

	if deps.Credential.APIKey != "" {
		config := openai.DefaultConfig(deps.Credential.APIKey)
		if deps.BaseURL != "" {
			config.BaseURL = deps.BaseURL
		}
		i.client = openai.NewClientWithConfig(config)
	}

	return i
}

// SetClient overrides the chat client, for tests.
func (i *Integration) SetClient(client *openai.Client) {
	i.client = client
}

// GenerateName produces one listing name for the combination.
func (i *Integration) GenerateName(ctx context.Context, combinedText, categoryPath, leafTerm string) string {
	maxRunes := i.nameSpec.Rules.MaxLength

	content, err := i.complete(ctx, i.nameSpec.Instruction(PromptInput{
		CombinedText: combinedText,
		CategoryPath: categoryPath,
		LeafTerm:     leafTerm,
	}))
	if err != nil {
		log.Debug().Err(err).Str("query", combinedText).Msg("name generation failed, using template fallback")
		return FallbackName(combinedText, leafTerm, maxRunes)
	}

	name := postprocessName(content, maxRunes)
	if name == "" {
		return FallbackName(combinedText, leafTerm, maxRunes)
	}
	return name
}

// GenerateRelated produces the ranked related-term list for a generated name.
func (i *Integration) GenerateRelated(ctx context.Context, combinedText, productName string) []string {
	max := i.relatedSpec.Rules.MaxTerms

	content, err := i.complete(ctx, i.relatedSpec.Instruction(PromptInput{
		CombinedText: combinedText,
		ProductName:  productName,
	}))
	if err != nil {
		log.Debug().Err(err).Str("query", combinedText).Msg("related-term generation failed, using template fallback")
		return FallbackRelated(combinedText, max)
	}

	terms := dedupeTerms(splitTerms(content), max)
	if len(terms) == 0 {
		return FallbackRelated(combinedText, max)
	}
	return terms
}

func (i *Integration) complete(ctx context.Context, instruction string) (string, error) {
	if i.client == nil {
		return "", fmt.Errorf("text generation credentials not configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	resp, err := i.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: i.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: instruction},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}

// splitTerms accepts both comma-separated and line-separated answers and
// sanitizes each entry.
func splitTerms(content string) []string {
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		terms = append(terms, sanitizeText(f))
	}
	return terms
}
