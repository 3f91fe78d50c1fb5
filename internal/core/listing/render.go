package listing

import (
	"fmt"
	"strings"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

// blockSeparator divides passage blocks in the rendered context.
const blockSeparator = "---"

// RenderContext formats retrieved passages as the field-labelled
// blocks the answer prompt presents to the model. The literal labels
// (Product Title, Product ID, Rating, Description) are what the
// parser's extraction patterns later anchor on, so the model sees IDs
// and ratings in a shape it can echo back.
func RenderContext(passages []domain.RetrievedPassage) string {
	blocks := make([]string, 0, len(passages))

	for _, rp := range passages {
		switch p := rp.Passage.(type) {
		case domain.StructuredPassage:
			blocks = append(blocks, fmt.Sprintf(
				"Product Title: %s\nProduct ID: %s\nRating: %s stars (%d reviews)\nDescription: %s\n%s",
				orUnknown(p.Product.Title),
				orUnknown(p.Product.ID),
				p.Product.AverageRating,
				p.Product.RatingNumber,
				p.Product.Content,
				blockSeparator,
			))
		case domain.RawPassage:
			blocks = append(blocks, p.Raw)
		}
	}

	return strings.Join(blocks, "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// DefaultPrompt is the answer synthesis template. It expects two %s
// placeholders: rendered context, then the question. The mandatory
// format section mirrors the grammar the parser accepts.
const DefaultPrompt = `You are a shopping assistant that helps users select products.

Use ONLY the context below to answer the question. If the answer is not in the context, say you don't know.
Crucially, you must filter the context to only include products relevant to the question.
Prefer products from distinct brands over near-duplicate variants of the same model.
Skip any product that has no valid Product ID. List at most 5 products.

Context:
%s

Question:
%s

***MANDATORY OUTPUT INSTRUCTIONS***:
You must list the products found that are relevant to the question. You MUST provide the Product ID, Average Rating, and Rating Number for each. DO NOT invent information or deviate from the structure below.

Example of Required Format:
1. Product Title: [Title of Product]
   - ID: [Product ID]
   - Rating: [Average Rating] ([Rating Number] reviews)
   - Description: [A very brief (one-phrase) summary of the product features]
2. Product Title: [Title of Next Product]
   - ID: [Product ID]
   - Rating: [Average Rating] ([Rating Number] reviews)
   - Description: [A very brief (one-phrase) summary of the product features]
...

Answer:`

// BuildPrompt renders the full answer prompt from a template conforming
// to DefaultPrompt's placeholder contract.
func BuildPrompt(template string, passages []domain.RetrievedPassage, question string) string {
	return fmt.Sprintf(template, RenderContext(passages), question)
}
