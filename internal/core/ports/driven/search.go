package driven

import (
	"context"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

// SearchEngine provides BM25 keyword retrieval over the product index.
// The k1/b hyperparameters are corpus-tuning knobs fixed when the
// engine is opened, not per-query parameters.
type SearchEngine interface {
	// Search returns at most k passages for the query, ordered by
	// descending score. Ties order by ascending document ID, which is
	// deterministic for a fixed index and query. A stored document
	// that fails to decode degrades to a raw passage rather than
	// failing the search.
	Search(ctx context.Context, query string, k int) ([]domain.RetrievedPassage, error)

	// Close releases resources.
	Close() error
}

// BuildResult reports what an index build did.
type BuildResult struct {
	// Skipped is true when an up-to-date index already existed and no
	// reconstruction work was performed.
	Skipped bool

	// Indexed is the number of documents written to the index.
	// Zero when Skipped.
	Indexed int

	// Dropped is the number of corpus records discarded for missing
	// required fields or malformed JSON. Zero when Skipped.
	Dropped int
}

// IndexBuilder constructs the persistent product index from the
// normalised catalogue corpus. Builds are wholesale: an index is
// rebuilt completely or not at all, never patched incrementally.
type IndexBuilder interface {
	// Build stages the corpus as enriched per-document JSON and
	// constructs the index from the staging file. When the index
	// already exists, is non-empty and its stored corpus fingerprint
	// matches, the build short-circuits with Skipped set. A
	// fingerprint mismatch forces a rebuild. Build failure is fatal
	// to startup.
	Build(ctx context.Context) (BuildResult, error)
}
