package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONSchema is a raw JSON-schema tree as handed to a provider. The named
// type implements json.Marshaler so it can be passed straight into the
// OpenAI structured-output request format.
type JSONSchema map[string]any

func (s JSONSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(s))
}

// LLMClientInterface is the single seam between the generation pipeline and
// a concrete model provider. CompleteStrict asks for output conforming to
// the supplied strict schema; CompleteJSON asks for a best-effort JSON
// object with no schema enforcement.
type LLMClientInterface interface {
	CompleteStrict(ctx context.Context, systemPrompt, userPrompt string, schema JSONSchema) (string, error)
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewLLMClient creates a provider client based on configuration.
func NewLLMClient(provider, apiKey, model string) (LLMClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "gemini":
		client, err := NewGeminiClient(apiKey, model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s. Use 'openai' or 'gemini'", provider)
	}
}

// StripCodeFences unwraps ```-fenced model output; models occasionally fence
// their JSON even when told not to.
func StripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	parts := strings.Split(t, "```")
	if len(parts) >= 3 {
		body := parts[1]
		// drop a language tag on the opening fence
		if i := strings.IndexByte(body, '\n'); i >= 0 {
			first := strings.TrimSpace(body[:i])
			if first == "json" || first == "JSON" {
				body = body[i+1:]
			}
		}
		return strings.TrimSpace(body)
	}
	return t
}
