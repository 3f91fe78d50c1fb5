package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/shopscout-labs/shopscout-cli/internal/analysis"
	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine scores BM25 queries against a built catalogue index.
// k1 and b are fixed at open time; they tune the engine to the corpus,
// not to individual queries.
type Engine struct {
	db       *sql.DB
	k1       float64
	b        float64
	docCount int
	avgLen   float64
}

// Open opens the index database under indexDir read-only and loads
// the corpus statistics BM25 needs. Returns domain.ErrIndexMissing
// when no built index is present.
func Open(indexDir string, k1, b float64) (*Engine, error) {
	dbPath := filepath.Join(indexDir, dbFileName)
	if info, err := os.Stat(dbPath); err != nil || info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexMissing, dbPath)
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	e := &Engine{db: db, k1: k1, b: b}
	if err := e.loadStats(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("BM25 engine ready: index=%s, docs=%d, avglen=%.1f, k1=%.2f, b=%.2f",
		indexDir, e.docCount, e.avgLen, k1, b)
	return e, nil
}

// loadStats reads document count and average length from index_meta.
func (e *Engine) loadStats() error {
	docCount, err := e.metaInt(metaDocCount)
	if err != nil {
		return fmt.Errorf("%w: unreadable metadata", domain.ErrIndexMissing)
	}
	if docCount == 0 {
		return fmt.Errorf("%w: index is empty", domain.ErrIndexMissing)
	}

	totalLength, err := e.metaInt(metaTotalLength)
	if err != nil {
		return fmt.Errorf("%w: unreadable metadata", domain.ErrIndexMissing)
	}

	version, err := e.metaValue(metaSchemaVersion)
	if err != nil || version != schemaVersion {
		return fmt.Errorf("%w: schema version mismatch", domain.ErrIndexStale)
	}

	e.docCount = docCount
	e.avgLen = float64(totalLength) / float64(docCount)
	return nil
}

func (e *Engine) metaValue(key string) (string, error) {
	var value string
	err := e.db.QueryRow("SELECT value FROM index_meta WHERE key = ?", key).Scan(&value)
	return value, err
}

func (e *Engine) metaInt(key string) (int, error) {
	value, err := e.metaValue(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// Search returns the top-k passages for the query by BM25 score,
// descending, ties broken by ascending document ID. Stored documents
// that fail to decode degrade to raw passages; one bad document never
// fails the whole search.
func (e *Engine) Search(ctx context.Context, query string, k int) ([]domain.RetrievedPassage, error) {
	// The pipeline validates questions before retrieval; this guard is
	// for direct callers.
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuestion
	}
	if k <= 0 {
		return []domain.RetrievedPassage{}, nil
	}

	terms := uniqueTerms(analysis.Tokenize(query))
	logger.Debug("Query terms: %v", terms)
	if len(terms) == 0 {
		return []domain.RetrievedPassage{}, nil
	}

	scores := make(map[string]float64)
	for _, term := range terms {
		if err := e.scoreTerm(ctx, term, scores); err != nil {
			return nil, fmt.Errorf("score term %q: %w", term, err)
		}
	}
	logger.Debug("Matched %d candidate documents", len(scores))

	top := topDocs(scores, k)

	passages := make([]domain.RetrievedPassage, 0, len(top))
	for rank, hit := range top {
		passage, err := e.loadPassage(ctx, hit.docID)
		if err != nil {
			return nil, fmt.Errorf("load document %s: %w", hit.docID, err)
		}
		passages = append(passages, domain.RetrievedPassage{
			Passage: passage,
			Score:   hit.score,
			Rank:    rank,
		})
	}
	return passages, nil
}

// scoreTerm accumulates the BM25 contribution of one term into scores.
func (e *Engine) scoreTerm(ctx context.Context, term string, scores map[string]float64) error {
	rows, err := e.db.QueryContext(ctx, `
		SELECT p.doc_id, p.tf, s.length
		FROM postings p
		JOIN doc_stats s ON s.doc_id = p.doc_id
		WHERE p.term = ?`, term)
	if err != nil {
		return err
	}
	defer rows.Close()

	type hit struct {
		docID  string
		tf     int
		length int
	}
	var hits []hit
	for rows.Next() {
		var h hit
		if err := rows.Scan(&h.docID, &h.tf, &h.length); err != nil {
			return err
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	df := len(hits)
	if df == 0 {
		return nil
	}

	// Lucene-style BM25 IDF, always positive.
	idf := math.Log(1 + (float64(e.docCount)-float64(df)+0.5)/(float64(df)+0.5))

	for _, h := range hits {
		tf := float64(h.tf)
		norm := e.k1 * (1 - e.b + e.b*float64(h.length)/e.avgLen)
		scores[h.docID] += idf * tf * (e.k1 + 1) / (tf + norm)
	}
	return nil
}

// scoredDoc pairs a document with its accumulated score.
type scoredDoc struct {
	docID string
	score float64
}

// topDocs selects the k best documents: descending score, then
// ascending document ID so results are deterministic for a fixed
// index and query.
func topDocs(scores map[string]float64, k int) []scoredDoc {
	docs := make([]scoredDoc, 0, len(scores))
	for id, score := range scores {
		docs = append(docs, scoredDoc{docID: id, score: score})
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].score != docs[j].score {
			return docs[i].score > docs[j].score
		}
		return docs[i].docID < docs[j].docID
	})

	if len(docs) > k {
		docs = docs[:k]
	}
	return docs
}

// loadPassage fetches the stored document and decodes it. Invalid
// JSON degrades to a raw passage carrying the stored bytes verbatim.
func (e *Engine) loadPassage(ctx context.Context, docID string) (domain.Passage, error) {
	var raw string
	err := e.db.QueryRowContext(ctx,
		"SELECT raw FROM documents WHERE id = ?", docID).Scan(&raw)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil || product.ID == "" {
		logger.Debug("Document %s stored content is not structured, using raw text", docID)
		return domain.RawPassage{Raw: raw}, nil
	}
	return domain.StructuredPassage{Product: product}, nil
}

// uniqueTerms deduplicates query tokens, preserving first-seen order.
func uniqueTerms(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// Close releases the database handle.
func (e *Engine) Close() error {
	return e.db.Close()
}
