package llm

// LLM is the minimal chat surface the analyzer needs from a backend.
type LLM interface {
	Chat(prompt string) (string, error)
}
