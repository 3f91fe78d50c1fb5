package driven

import "context"

// LLMService provides text completion for answer synthesis, relevance
// filtering and review summarisation. The interface enforces no output
// structure: all structure is achieved by prompt instruction and
// recovered by the listing parser.
//
// Implementations may include:
//   - Ollama (local models)
//   - Any endpoint speaking the same completion contract
type LLMService interface {
	// Generate produces a text completion from a fully rendered prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used at startup before committing to LLM features.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
