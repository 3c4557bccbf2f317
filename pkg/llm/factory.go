package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// Options configures backend creation. Zero values fall back to environment
// variables and provider defaults.
type Options struct {
	Provider string
	Model    string
	Timeout  time.Duration
}

// New creates an LLM backend from options and environment variables. With no
// provider set it auto-detects: an explicit LLM_PROVIDER wins, otherwise
// Claude when ANTHROPIC_API_KEY is set, then OpenAI when OPENAI_API_KEY is.
func New(opts Options) (LLM, error) {
	provider := strings.ToLower(opts.Provider)
	if provider == "" {
		provider = strings.ToLower(os.Getenv("LLM_PROVIDER"))
	}
	if provider == "" {
		switch {
		case os.Getenv("ANTHROPIC_API_KEY") != "":
			provider = string(ProviderClaude)
		case os.Getenv("OPENAI_API_KEY") != "":
			provider = string(ProviderOpenAI)
		default:
			return nil, fmt.Errorf("no AI backend configured: set ANTHROPIC_API_KEY or OPENAI_API_KEY")
		}
	}

	switch Provider(provider) {
	case ProviderClaude:
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		model := opts.Model
		if model == "" {
			model = os.Getenv("CLAUDE_MODEL")
		}
		var c *Claude
		if model != "" {
			c = NewClaudeWithModel(apiKey, model)
		} else {
			c = NewClaude(apiKey)
		}
		c.SetTimeout(opts.Timeout)
		return c, nil

	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		model := opts.Model
		if model == "" {
			model = os.Getenv("OPENAI_MODEL")
		}
		var o *OpenAI
		if model != "" {
			o = NewOpenAIWithModel(apiKey, model)
		} else {
			o = NewOpenAI(apiKey)
		}
		o.SetTimeout(opts.Timeout)
		return o, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: claude, openai)", provider)
	}
}
