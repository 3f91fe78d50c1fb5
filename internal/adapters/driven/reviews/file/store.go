// Package file implements the review store over a newline-delimited
// JSON review corpus. The file is opened read-only; one pass at open
// time records the byte offset of every review line per product ID, so
// lookups seek straight to their product's lines instead of rescanning
// the whole corpus. This mirrors the primary index's
// build-once-at-startup pattern.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ReviewStore = (*Store)(nil)

// reviewLine is the on-disk review record. The product ID lives in the
// "asin" field.
type reviewLine struct {
	ASIN   string        `json:"asin"`
	Rating domain.Rating `json:"rating"`
	Title  string        `json:"title"`
	Text   string        `json:"text"`
}

// Store reads reviews from a JSONL corpus by product ID.
type Store struct {
	file    *os.File
	offsets map[string][]int64
}

// Open opens the review corpus and builds the id -> offsets map.
// Malformed lines and lines without an asin are skipped.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open review corpus: %w", err)
	}

	offsets := make(map[string][]int64)
	reader := bufio.NewReaderSize(f, 1024*1024)

	var offset int64
	var lines, skipped int
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			var rec struct {
				ASIN string `json:"asin"`
			}
			if json.Unmarshal(line, &rec) == nil && rec.ASIN != "" {
				offsets[rec.ASIN] = append(offsets[rec.ASIN], offset)
				lines++
			} else {
				skipped++
			}
			offset += int64(len(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("scan review corpus: %w", err)
		}
	}

	logger.Info("Review store ready: %d reviews across %d products (%d lines skipped)",
		lines, len(offsets), skipped)

	return &Store{file: f, offsets: offsets}, nil
}

// ByProductID returns the product's reviews in file order.
func (s *Store) ByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	positions := s.offsets[productID]
	if len(positions) == 0 {
		return []domain.Review{}, nil
	}

	reviews := make([]domain.Review, 0, len(positions))
	for _, pos := range positions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, err := s.readLine(pos)
		if err != nil {
			return nil, fmt.Errorf("read review at offset %d: %w", pos, err)
		}

		var rec reviewLine
		if err := json.Unmarshal(line, &rec); err != nil {
			// The offset map only points at lines that decoded once;
			// failing now means the file changed underneath us.
			return nil, fmt.Errorf("decode review at offset %d: %w", pos, err)
		}

		reviews = append(reviews, domain.Review{
			Rating: rec.Rating,
			Title:  rec.Title,
			Text:   rec.Text,
		})
	}
	return reviews, nil
}

// readLine reads one newline-terminated line starting at offset.
func (s *Store) readLine(offset int64) ([]byte, error) {
	if _, err := s.file.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	line, err := bufio.NewReader(s.file).ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return line, nil
}

// Products returns how many distinct products have reviews.
func (s *Store) Products() int {
	return len(s.offsets)
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.file.Close()
}
