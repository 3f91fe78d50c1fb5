package domain

// Turn holds the state of one question/answer exchange as it moves
// through the pipeline. Stages fill fields in additively; nothing is
// removed. Each new question produces a fresh Turn, fully replacing
// the previous one, so no state leaks across turns.
type Turn struct {
	// ID identifies the turn in verbose logs.
	ID string

	// Question is the user's question, trimmed.
	Question string

	// Passages is the retrieved (and possibly filtered) context.
	Passages []RetrievedPassage

	// AnswerText is the synthesised answer, empty until generation.
	AnswerText string

	// Listing is the parsed position -> product relation. Empty when
	// parsing failed or the answer listed nothing.
	Listing Listing

	// Err records a turn-level failure (retrieval or generation).
	// A turn with Err set still ends cleanly; the loop continues.
	Err error
}

// Answered reports whether the turn produced an answer.
func (t *Turn) Answered() bool { return t.AnswerText != "" }
