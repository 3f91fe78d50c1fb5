package domain

// Passage is one unit of retrieved context. It is a closed variant:
// StructuredPassage when the stored document decoded cleanly,
// RawPassage when the stored bytes were not valid JSON. The single
// conversion point is index deserialisation; consumers switch on the
// concrete type instead of probing for fields.
type Passage interface {
	// Text returns the full searchable content of the passage.
	Text() string

	isPassage()
}

// StructuredPassage is a passage with product metadata attached.
type StructuredPassage struct {
	// Product carries the decoded catalogue record.
	Product Product
}

// Text returns the enriched product content.
func (p StructuredPassage) Text() string { return p.Product.Content }

func (StructuredPassage) isPassage() {}

// RawPassage is a passage whose stored form could not be decoded.
// The raw bytes become the full content; no metadata is available.
type RawPassage struct {
	// Raw is the stored document text as-is.
	Raw string
}

// Text returns the raw stored text.
func (p RawPassage) Text() string { return p.Raw }

func (RawPassage) isPassage() {}

// RetrievedPassage is a Passage annotated with its retrieval score.
// Instances belong to the query that produced them and are discarded
// after synthesis.
type RetrievedPassage struct {
	// Passage is the retrieved content.
	Passage Passage

	// Score is the BM25 relevance score.
	Score float64

	// Rank is the 0-based position by descending score.
	Rank int
}

// WithContent returns a copy of the retrieved passage whose content is
// replaced, preserving metadata for structured passages. The relevance
// filter uses this to substitute an extracted excerpt.
func (rp RetrievedPassage) WithContent(content string) RetrievedPassage {
	switch p := rp.Passage.(type) {
	case StructuredPassage:
		p.Product.Content = content
		rp.Passage = p
	case RawPassage:
		p.Raw = content
		rp.Passage = p
	}
	return rp
}
