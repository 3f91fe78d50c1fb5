package driving

import (
	"context"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

// AssistantService answers catalogue questions.
type AssistantService interface {
	// Ask runs one full turn: retrieve, optionally filter, synthesise,
	// parse. Validation failures (empty question) return an error with
	// no turn; pipeline failures return a turn with Err set so the
	// caller can keep its loop alive.
	Ask(ctx context.Context, question string) (*domain.Turn, error)
}

// ReviewService summarises customer reviews for one product.
type ReviewService interface {
	// Summarize fetches the product's reviews, truncates them to the
	// configured cap in source order, and asks the language model for
	// a bounded qualitative summary. Returns domain.ErrNotFound when
	// the product has no reviews.
	Summarize(ctx context.Context, productID, productTitle string) (string, error)
}
