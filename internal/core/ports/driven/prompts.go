package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the
// binary, or fetch them from a remote configuration service. Prompt
// wording is a swappable asset; the only hard contract is that the
// listing prompt's output format stays parseable by the listing
// grammar.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt
	// is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptListing synthesises the product listing answer.
	// The template expects %s (context) and %s (question) placeholders
	// and must instruct the model to emit the listing grammar.
	PromptListing = "listing"

	// PromptRelevanceFilter extracts the query-relevant excerpt of one
	// passage. The template expects %s (question) and %s (passage).
	PromptRelevanceFilter = "relevance_filter"

	// PromptReviewSummary summarises a set of reviews for one product.
	// The template expects %s (product title), %s (reviews context)
	// and a trailing %s (product title again).
	PromptReviewSummary = "review_summary"
)
