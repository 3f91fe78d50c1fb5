package cli

import (
	"context"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driving"
)

// Compile-time interface checks for the mocks.
var (
	_ driving.AssistantService = (*mockAssistant)(nil)
	_ driving.ReviewService    = (*mockReviews)(nil)
)

// mockAssistant implements driving.AssistantService for CLI tests.
type mockAssistant struct {
	turn      *domain.Turn
	err       error
	questions []string
}

func (m *mockAssistant) Ask(_ context.Context, question string) (*domain.Turn, error) {
	m.questions = append(m.questions, question)
	if m.err != nil {
		return nil, m.err
	}
	if m.turn != nil {
		return m.turn, nil
	}
	return &domain.Turn{Question: question, AnswerText: "nothing matched"}, nil
}

// mockReviews implements driving.ReviewService for CLI tests.
type mockReviews struct {
	summary string
	err     error
	asked   []string
}

func (m *mockReviews) Summarize(_ context.Context, productID, _ string) (string, error) {
	m.asked = append(m.asked, productID)
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

// kettleTurn is a completed turn with a one-entry listing.
func kettleTurn() *domain.Turn {
	return &domain.Turn{
		Question: "kettle",
		AnswerText: "1. Test Kettle\n" +
			" - ID: B0TESTID01\n" +
			" - Rating: 4.5 stars (120 reviews)\n" +
			" - Description: Boils fast.",
		Listing: domain.Listing{Entries: []domain.ListingEntry{
			{Position: 1, ProductID: "B0TESTID01", Title: "Test Kettle"},
		}},
	}
}

// setupTestServices swaps the package-level services for mocks and
// returns a cleanup restoring the originals.
func setupTestServices() func() {
	oldAssistant, oldReviews := assistantService, reviewService
	assistantService = &mockAssistant{turn: kettleTurn()}
	reviewService = &mockReviews{summary: "Owners like it."}
	return func() {
		assistantService = oldAssistant
		reviewService = oldReviews
	}
}
