package factory

import (
	"fmt"
	"time"

	"notehub-be/pkg/llm"
	"notehub-be/pkg/llm/gateway"
	"notehub-be/pkg/llm/ollama"
)

type Params struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "gateway", "":
		if p.APIKey == "" {
			return nil, fmt.Errorf("gateway provider requires an API key")
		}
		return gateway.NewGatewayProvider(p.APIKey, p.BaseURL, p.Model, p.Timeout), nil
	case "ollama":
		baseURL := p.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, p.Model, p.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
