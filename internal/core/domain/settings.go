package domain

import "time"

// Settings holds the runtime configuration of the assistant.
// All values are optional in the config file and environment;
// DefaultSettings supplies the fallbacks.
type Settings struct {
	// LLMModel is the model identifier passed to the LLM service.
	LLMModel string

	// LLMBaseURL is the endpoint of the LLM service.
	LLMBaseURL string

	// LLMTimeout bounds a single LLM request.
	LLMTimeout time.Duration

	// CatalogueName names the corpus; it selects the dataset file,
	// the staging directory and the index directory.
	CatalogueName string

	// DataDir is the directory holding the raw catalogue dumps.
	DataDir string

	// RetrieverK is the number of passages retrieved per question.
	RetrieverK int

	// BM25K1 controls term-frequency saturation. The default of 2.0
	// favours longer, feature-rich product descriptions, which suits a
	// corpus whose "descriptions" are concatenations of short fields.
	BM25K1 float64

	// BM25B controls document-length normalisation strength.
	BM25B float64

	// ReviewFile is the path to the review corpus.
	ReviewFile string

	// ReviewCap bounds how many reviews feed one summary prompt.
	ReviewCap int

	// FilterEnabled turns on LLM relevance filtering of retrieved
	// passages. Filtering is an optimisation, never a gate: when it
	// yields nothing the unfiltered passages are used.
	FilterEnabled bool
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		LLMModel:      "llama3.2",
		LLMBaseURL:    "http://localhost:11434",
		LLMTimeout:    120 * time.Second,
		CatalogueName: "meta_Appliances_cleaned",
		DataDir:       "dataset",
		RetrieverK:    20,
		BM25K1:        2.0,
		BM25B:         0.8,
		ReviewFile:    "dataset/Appliances_cleaned.jsonl",
		ReviewCap:     15,
		FilterEnabled: false,
	}
}
