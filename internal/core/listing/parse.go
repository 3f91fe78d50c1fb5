package listing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

// Extraction patterns. These anchor on the grammar DefaultPrompt
// demands, tolerating cosmetic drift (indentation, an optional
// "Product Title:" prefix) without weakening the structural anchors.
var (
	// entryPattern matches a numbered list line: leading integer, dot,
	// whitespace, rest of line. The whitespace is mandatory so prose
	// starting with a decimal number ("4.5 stars overall") is not
	// mistaken for entry 4.
	entryPattern = regexp.MustCompile(`(?m)^\s*(\d+)\.\s+(.+)$`)

	// idPattern matches a product ID line: dash, "ID:" label, then a
	// ten-character ASIN starting with B0.
	idPattern = regexp.MustCompile(`(?m)^\s*[-*]\s*ID:\s*` + "`?" + `(B0[A-Z0-9]{8})`)

	// titlePrefixPattern strips an echoed "Product Title:" label.
	titlePrefixPattern = regexp.MustCompile(`(?i)^product\s+title:\s*`)

	// titleTrailerPattern removes rating/id fragments that leak into a
	// single-line title capture.
	titleTrailerPattern = regexp.MustCompile(`\s*[-(\[]\s*(?:ID|Rating)\b.*$`)

	// markupPattern strips bold/emphasis markers the model sometimes
	// wraps titles in.
	markupPattern = regexp.MustCompile(`[*_]{1,2}`)
)

// Parse recovers the position -> (product ID, title) relation from a
// generated answer. Numbered title lines and ID lines are extracted in
// two independent passes; when their counts disagree, zip-order
// pairing is untrustworthy and the parse fails as a whole with
// domain.ErrParseMismatch, never a partial listing.
func Parse(answerText string) (domain.Listing, error) {
	entries := entryPattern.FindAllStringSubmatch(answerText, -1)
	ids := idPattern.FindAllStringSubmatch(answerText, -1)

	if len(entries) != len(ids) {
		return domain.Listing{}, fmt.Errorf("%w: %d titles, %d ids",
			domain.ErrParseMismatch, len(entries), len(ids))
	}
	if len(entries) == 0 {
		return domain.Listing{}, nil
	}

	listing := domain.Listing{Entries: make([]domain.ListingEntry, 0, len(entries))}
	seen := make(map[int]struct{}, len(entries))

	for i, m := range entries {
		pos, err := strconv.Atoi(m[1])
		if err != nil {
			return domain.Listing{}, fmt.Errorf("%w: bad position %q", domain.ErrParseMismatch, m[1])
		}
		if _, dup := seen[pos]; dup {
			return domain.Listing{}, fmt.Errorf("%w: duplicate position %d", domain.ErrParseMismatch, pos)
		}
		seen[pos] = struct{}{}

		listing.Entries = append(listing.Entries, domain.ListingEntry{
			Position:  pos,
			ProductID: ids[i][1],
			Title:     CleanTitle(m[2]),
		})
	}

	return listing, nil
}

// CleanTitle normalises a captured title: first line only, optional
// "Product Title:" prefix removed, emphasis markers dropped, trailing
// rating/ID fragments stripped.
func CleanTitle(raw string) string {
	title := raw
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx]
	}
	title = titlePrefixPattern.ReplaceAllString(title, "")
	title = markupPattern.ReplaceAllString(title, "")
	title = titleTrailerPattern.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
