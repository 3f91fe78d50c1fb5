package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/listing"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driving"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.AssistantService = (*Assistant)(nil)

// Assistant runs the question pipeline: retrieve, optionally filter,
// synthesise, parse. One question is fully processed before the next
// is accepted; there is no concurrency inside a turn.
type Assistant struct {
	engine      driven.SearchEngine
	llm         driven.LLMService
	promptStore driven.PromptStore
	settings    domain.Settings
}

// NewAssistant creates the pipeline service. The llm parameter is
// optional (can be nil); without it retrieval still works but turns
// end with ErrLLMUnavailable instead of an answer.
func NewAssistant(engine driven.SearchEngine, llm driven.LLMService, settings domain.Settings) *Assistant {
	return &Assistant{
		engine:   engine,
		llm:      llm,
		settings: settings,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses the embedded default prompts.
func (a *Assistant) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// Ask runs one full turn. An empty question is a validation error and
// returns no turn. Retrieval and generation failures are recorded on
// the returned turn so the caller's loop survives them.
func (a *Assistant) Ask(ctx context.Context, question string) (*domain.Turn, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	turn := &domain.Turn{ID: uuid.NewString(), Question: question}
	logger.Section("Question")
	logger.Debug("Turn %s: %q", turn.ID, question)

	a.retrieve(ctx, turn)
	if turn.Err != nil {
		return turn, nil
	}

	if a.settings.FilterEnabled && a.llm != nil {
		turn.Passages = a.filterPassages(ctx, question, turn.Passages)
	}

	a.generate(ctx, turn)
	if turn.Err != nil {
		return turn, nil
	}

	a.parseListing(turn)
	return turn, nil
}

// retrieve fills the turn with the top-k passages for the question.
func (a *Assistant) retrieve(ctx context.Context, turn *domain.Turn) {
	logger.Debug("Retrieving top %d passages (k1=%.2f, b=%.2f)",
		a.settings.RetrieverK, a.settings.BM25K1, a.settings.BM25B)

	passages, err := a.engine.Search(ctx, turn.Question, a.settings.RetrieverK)
	if err != nil {
		logger.Warn("Retrieval failed: %v", err)
		turn.Err = err
		return
	}

	turn.Passages = append(turn.Passages, passages...)
	logger.Info("Retrieved %d passages", len(passages))
}

// generate asks the model for the structured product listing answer.
func (a *Assistant) generate(ctx context.Context, turn *domain.Turn) {
	if a.llm == nil {
		turn.Err = domain.ErrLLMUnavailable
		return
	}

	template := loadPrompt(a.promptStore, driven.PromptListing, listing.DefaultPrompt)
	prompt := listing.BuildPrompt(template, turn.Passages, turn.Question)

	answer, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		turn.Err = errors.Join(domain.ErrLLMUnavailable, err)
		return
	}

	turn.AnswerText = strings.TrimSpace(answer)
	logger.Info("Answer generated (%d chars)", len(turn.AnswerText))
}

// parseListing recovers the position -> product relation from the
// answer. A parse mismatch is not a turn error: the answer was still
// delivered, only follow-up selection is unavailable.
func (a *Assistant) parseListing(turn *domain.Turn) {
	parsed, err := listing.Parse(turn.AnswerText)
	if err != nil {
		logger.Warn("Listing not parseable, follow-up disabled: %v", err)
		return
	}
	turn.Listing = parsed
	logger.Debug("Parsed %d listing entries", parsed.Len())
}
