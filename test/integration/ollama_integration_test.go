package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-chat-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a running Ollama with at least one model pulled. Gated on
// OLLAMA_INTEGRATION so CI without a GPU box skips it.
func TestOllamaRoundTrip(t *testing.T) {
	if os.Getenv("OLLAMA_INTEGRATION") == "" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "mistral"
	}

	provider := ollama.NewOllamaProvider(baseURL, model, 2*time.Minute)
	ctx := context.Background()

	models, err := provider.ListModels(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, models)
	t.Logf("Available models: %v", models)

	reply, err := provider.Generate(ctx, "Reply with the single word: pong")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	t.Logf("Generate reply: %q", reply)
}
