package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
)

// chatServer fakes the Ollama chat endpoint, replying with the given
// message content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		resp := map[string]any{
			"model":   "llama3.2",
			"message": map[string]any{"role": "assistant", "content": content},
			"done":    true,
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestNewLLMService_InvalidURL(t *testing.T) {
	_, err := NewLLMService(Config{BaseURL: "http://[::1]:bad"})
	assert.Error(t, err)
}

func TestGenerate_ReturnsOutputUnmodified(t *testing.T) {
	// Leading and trailing whitespace from the model must survive.
	const raw = "  The dose is 500 mg twice daily. \n"
	server := chatServer(t, raw)

	svc, err := NewLLMService(Config{BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := svc.Generate(context.Background(), "What is the dose?", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, raw, answer)
}
