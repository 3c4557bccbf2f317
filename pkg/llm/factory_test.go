package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LLM_PROVIDER", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "CLAUDE_MODEL", "OPENAI_MODEL"} {
		t.Setenv(key, "")
	}
}

func TestNewNoBackendConfigured(t *testing.T) {
	clearEnv(t)
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNewAutoDetectsClaude(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	backend, err := New(Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	_, ok := backend.(*Claude)
	assert.True(t, ok)
}

func TestNewAutoDetectsOpenAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "test-key")

	backend, err := New(Options{Model: "gpt-4o-mini"})
	require.NoError(t, err)
	o, ok := backend.(*OpenAI)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", o.GetModel())
}

func TestNewExplicitProviderMissingKey(t *testing.T) {
	clearEnv(t)
	_, err := New(Options{Provider: "claude"})
	assert.Error(t, err)
}

func TestNewUnsupportedProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	_, err := New(Options{Provider: "gemini"})
	assert.Error(t, err)
}
