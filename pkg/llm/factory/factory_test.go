package factory

import (
	"testing"

	"notehub-be/pkg/llm/gateway"
	"notehub-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Params{Provider: "gateway", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &gateway.GatewayProvider{}, p)

	p, err = NewLLMProvider(Params{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	_, err = NewLLMProvider(Params{Provider: "gateway"})
	assert.Error(t, err)

	_, err = NewLLMProvider(Params{Provider: "carrier-pigeon"})
	assert.EqualError(t, err, "unsupported LLM provider: carrier-pigeon")
}
