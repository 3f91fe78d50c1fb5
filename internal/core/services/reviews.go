package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driving"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// Ensure ReviewSummarizer implements the interface.
var _ driving.ReviewService = (*ReviewSummarizer)(nil)

// ReviewSummarizer produces a bounded qualitative summary of one
// product's reviews.
type ReviewSummarizer struct {
	store       driven.ReviewStore
	llm         driven.LLMService
	promptStore driven.PromptStore

	// maxReviews bounds how many reviews feed one prompt. Truncation
	// keeps the first maxReviews in source order; no quality metric is
	// applied.
	maxReviews int
}

// NewReviewSummarizer creates the review service. The llm parameter
// is optional (can be nil).
func NewReviewSummarizer(store driven.ReviewStore, llm driven.LLMService, maxReviews int) *ReviewSummarizer {
	if maxReviews <= 0 {
		maxReviews = domain.DefaultSettings().ReviewCap
	}
	return &ReviewSummarizer{store: store, llm: llm, maxReviews: maxReviews}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses the embedded default prompt.
func (r *ReviewSummarizer) SetPromptStore(store driven.PromptStore) {
	r.promptStore = store
}

// Summarize fetches the product's reviews and asks the model for a
// balanced overall summary. The summary is presented as-is; unlike the
// listing answer, no structure is parsed back out of it.
func (r *ReviewSummarizer) Summarize(ctx context.Context, productID, productTitle string) (string, error) {
	logger.Section("Review Summary")
	logger.Debug("Product %s (%s)", productID, productTitle)

	reviews, err := r.store.ByProductID(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("look up reviews for %s: %w", productID, err)
	}
	if len(reviews) == 0 {
		return "", fmt.Errorf("%w: no reviews for %s", domain.ErrNotFound, productID)
	}
	if r.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	total := len(reviews)
	if total > r.maxReviews {
		reviews = reviews[:r.maxReviews]
	}
	logger.Info("Summarising %d of %d reviews", len(reviews), total)

	template := loadPrompt(r.promptStore, driven.PromptReviewSummary, DefaultReviewSummaryPrompt)
	prompt := fmt.Sprintf(template, productTitle, renderReviews(reviews), productTitle)

	summary, err := r.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("summarise reviews: %w", err)
	}

	return strings.TrimSpace(summary), nil
}

// renderReviews formats reviews as rating/title/body blocks for the
// summary prompt.
func renderReviews(reviews []domain.Review) string {
	blocks := make([]string, len(reviews))
	for i, rev := range reviews {
		blocks[i] = fmt.Sprintf("Rating: %s stars\nTitle: %s\nReview: %s\n---",
			rev.Rating, rev.Title, rev.Text)
	}
	return strings.Join(blocks, "\n")
}
