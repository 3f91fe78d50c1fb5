package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyQuestion indicates the user submitted a blank question.
	// This is a validation failure: the turn is aborted, the loop continues.
	ErrEmptyQuestion = errors.New("empty question")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Index Errors.

	// ErrIndexMissing indicates the catalogue index has not been built.
	ErrIndexMissing = errors.New("index missing")

	// ErrIndexStale indicates the stored corpus fingerprint no longer
	// matches the corpus file. The index must be rebuilt, not reused.
	ErrIndexStale = errors.New("index stale")

	// ErrBuildFailed indicates index construction did not complete.
	// Build failure is fatal to startup.
	ErrBuildFailed = errors.New("index build failed")

	// Pipeline Errors.

	// ErrLLMUnavailable indicates the language model service is not
	// configured or not reachable. Answer synthesis and review
	// summaries are disabled; keyword retrieval still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrParseMismatch indicates the listing parser extracted an
	// unequal number of titles and product IDs. No partial listing is
	// produced; the answer stands but follow-up selection is disabled.
	ErrParseMismatch = errors.New("listing parse mismatch")

	// ErrInvalidSelection indicates a follow-up selection that does not
	// correspond to any listed position.
	ErrInvalidSelection = errors.New("invalid selection")
)
