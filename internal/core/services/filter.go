package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// notRelevantMarker is the reply the filter prompt demands for
// passages with nothing relevant in them.
const notRelevantMarker = "NOT_RELEVANT"

// filterPassages asks the model to condense each passage to its
// query-relevant excerpt. Filtering is strictly an optimisation: when
// it drops everything, or the model fails, the original passage set is
// returned unchanged so the synthesiser never sees an empty context
// that retrieval had filled.
func (a *Assistant) filterPassages(
	ctx context.Context, question string, passages []domain.RetrievedPassage,
) []domain.RetrievedPassage {
	if len(passages) == 0 {
		return passages
	}

	logger.Section("Relevance Filter")
	template := loadPrompt(a.promptStore, driven.PromptRelevanceFilter, DefaultFilterPrompt)

	kept := make([]domain.RetrievedPassage, 0, len(passages))
	for _, rp := range passages {
		excerpt, ok := a.extractRelevant(ctx, template, question, rp)
		if !ok {
			continue
		}
		filtered := rp.WithContent(excerpt)
		filtered.Rank = len(kept)
		kept = append(kept, filtered)
	}

	if len(kept) == 0 {
		logger.Info("Filter yielded 0 passages, falling back to unfiltered set")
		return passages
	}

	logger.Info("Filter kept %d of %d passages", len(kept), len(passages))
	return kept
}

// extractRelevant runs the filter prompt for one passage. Any model
// failure counts as "not relevant"; the caller's fallback guarantees
// an outage never empties the context.
func (a *Assistant) extractRelevant(
	ctx context.Context, template, question string, rp domain.RetrievedPassage,
) (string, bool) {
	prompt := fmt.Sprintf(template, question, rp.Passage.Text())

	out, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   512,
		Temperature: 0.1,
	})
	if err != nil {
		logger.Debug("Filter call failed: %v", err)
		return "", false
	}

	excerpt := strings.TrimSpace(out)
	if excerpt == "" || strings.Contains(excerpt, notRelevantMarker) {
		return "", false
	}
	return excerpt, true
}
