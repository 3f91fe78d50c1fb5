package services

import (
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
)

// DefaultFilterPrompt extracts the query-relevant part of one passage.
// Expects %s (question) and %s (passage text). A reply of NOT_RELEVANT
// (or nothing) drops the passage.
const DefaultFilterPrompt = `Given the following question and context, extract any part of the context *AS IS* that is relevant to answer the question.
If none of the context is relevant, reply with exactly: NOT_RELEVANT

Question:
%s

Context:
%s

Relevant part:`

// DefaultReviewSummaryPrompt summarises a set of reviews for one
// product. Expects %s (product title), %s (reviews context) and a
// trailing %s (product title again).
const DefaultReviewSummaryPrompt = `You are an expert review summarizer. Your task is to read a collection of user reviews for the product: "%s" and provide a balanced, overall summary.

INSTRUCTIONS:
1. Analyze the sentiment (positive, negative, neutral) across all reviews.
2. Identify the top 2 most common positive points (pros) and the top 2 most common negative points (cons).
3. Synthesize the findings into a clear, concise overall review.
4. Your final summary must be 4 to 6 sentences long.
5. Do NOT invent or hallucinate any details not present in the provided reviews.

REVIEWS CONTEXT:
%s

Overall Product Review for "%s":`

// loadPrompt resolves a prompt by name from the store, falling back to
// the embedded default when no store is configured or loading fails.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
