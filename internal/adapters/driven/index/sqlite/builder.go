package sqlite

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/shopscout-labs/shopscout-cli/internal/analysis"
	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// Ensure Builder implements the interface.
var _ driven.IndexBuilder = (*Builder)(nil)

// Database file name within the index directory.
const dbFileName = "index.db"

// Metadata keys stored in index_meta.
const (
	metaSchemaVersion = "schema_version"
	metaDocCount      = "doc_count"
	metaTotalLength   = "total_length"
	metaFingerprint   = "fingerprint"
	metaBuiltAt       = "built_at"
)

// schemaVersion guards against reading an index written by an
// incompatible layout.
const schemaVersion = "1"

const schema = `
CREATE TABLE documents (
	id  TEXT PRIMARY KEY,
	raw TEXT NOT NULL
);

CREATE TABLE postings (
	term      TEXT NOT NULL,
	doc_id    TEXT NOT NULL,
	tf        INTEGER NOT NULL,
	positions TEXT NOT NULL,
	PRIMARY KEY (term, doc_id)
) WITHOUT ROWID;

CREATE TABLE doc_stats (
	doc_id TEXT PRIMARY KEY,
	length INTEGER NOT NULL
);

CREATE TABLE index_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Builder constructs the catalogue index from the normalised corpus.
type Builder struct {
	corpusPath string
	stagingDir string
	indexDir   string
}

// NewBuilder creates an index builder for one named catalogue.
// Paths follow the conventional layout:
//
//	corpus:  {dataDir}/{name}.jsonl
//	staging: processed_corpus/{name}/documents.jsonl
//	index:   indexes/{name}/index.db
func NewBuilder(dataDir, catalogueName string) *Builder {
	return &Builder{
		corpusPath: filepath.Join(dataDir, catalogueName+".jsonl"),
		stagingDir: filepath.Join("processed_corpus", catalogueName),
		indexDir:   filepath.Join("indexes", catalogueName),
	}
}

// IndexDir returns the directory the index is built into.
func (b *Builder) IndexDir() string {
	return b.indexDir
}

// corpusRecord is one line of the normalised product corpus.
type corpusRecord struct {
	ProductID     string        `json:"product_id"`
	Title         string        `json:"title"`
	CategoriesStr string        `json:"categories_str"`
	Categories    []string      `json:"categories"`
	Brand         string        `json:"brand"`
	Price         any           `json:"price"`
	AverageRating domain.Rating `json:"average_rating"`
	RatingNumber  int           `json:"rating_number"`
	AllText       string        `json:"all_text"`
}

// stagedDoc is one line of the staged corpus: the flattened product
// plus a product_id passthrough for downstream display consumers.
type stagedDoc struct {
	domain.Product
	ProductID string `json:"product_id"`
}

// Build stages the corpus and constructs the index.
// When the index directory already holds a non-empty database whose
// stored fingerprint matches the corpus file, construction is skipped
// entirely. A fingerprint mismatch (corpus changed, or a build that
// never finished writing metadata) forces a full rebuild.
func (b *Builder) Build(ctx context.Context) (driven.BuildResult, error) {
	logger.Section("Index Build")
	logger.Debug("Corpus: %s", b.corpusPath)

	fingerprint, err := corpusFingerprint(b.corpusPath)
	if err != nil {
		return driven.BuildResult{}, fmt.Errorf("%w: stat corpus: %v", domain.ErrBuildFailed, err)
	}

	if b.upToDate(fingerprint) {
		logger.Info("Index already exists at %s, skipping build", b.indexDir)
		return driven.BuildResult{Skipped: true}, nil
	}

	staged, dropped, err := b.stage(ctx)
	if err != nil {
		return driven.BuildResult{}, fmt.Errorf("%w: %v", domain.ErrBuildFailed, err)
	}
	logger.Info("Staged %d documents (%d dropped)", staged, dropped)

	if err := b.construct(ctx, fingerprint); err != nil {
		return driven.BuildResult{}, fmt.Errorf("%w: %v", domain.ErrBuildFailed, err)
	}
	logger.Info("Index built at %s", b.indexDir)

	return driven.BuildResult{Indexed: staged, Dropped: dropped}, nil
}

// upToDate reports whether a non-empty index with a matching corpus
// fingerprint already exists. Any failure to read the existing index
// means "rebuild", never "skip".
func (b *Builder) upToDate(fingerprint string) bool {
	dbPath := filepath.Join(b.indexDir, dbFileName)
	if info, err := os.Stat(dbPath); err != nil || info.Size() == 0 {
		return false
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		return false
	}
	defer db.Close()

	var stored string
	if err := db.QueryRow(
		"SELECT value FROM index_meta WHERE key = ?", metaFingerprint,
	).Scan(&stored); err != nil {
		return false
	}
	if stored != fingerprint {
		logger.Warn("Corpus fingerprint changed, rebuilding index at %s", b.indexDir)
		return false
	}

	var version string
	if err := db.QueryRow(
		"SELECT value FROM index_meta WHERE key = ?", metaSchemaVersion,
	).Scan(&version); err != nil || version != schemaVersion {
		return false
	}
	return true
}

// stage converts the raw corpus into the enriched per-document JSONL
// the index is constructed from. Malformed lines, records missing
// product_id or title, and repeated product_ids are dropped
// individually; they never abort the build.
func (b *Builder) stage(ctx context.Context) (staged, dropped int, err error) {
	in, err := os.Open(b.corpusPath)
	if err != nil {
		return 0, 0, fmt.Errorf("open corpus: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(b.stagingDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create staging dir: %w", err)
	}

	outPath := filepath.Join(b.stagingDir, "documents.jsonl")
	out, err := os.Create(outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("create staging file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	// Document IDs are the primary key downstream; the first
	// occurrence of a product_id wins, repeats are dropped.
	seen := make(map[string]struct{})

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec corpusRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			dropped++
			continue
		}
		if rec.ProductID == "" || rec.Title == "" {
			dropped++
			continue
		}
		if _, dup := seen[rec.ProductID]; dup {
			dropped++
			continue
		}
		seen[rec.ProductID] = struct{}{}

		doc := stagedDoc{Product: enrich(rec), ProductID: rec.ProductID}
		data, err := json.Marshal(doc)
		if err != nil {
			dropped++
			continue
		}
		w.Write(data)
		w.WriteByte('\n')
		staged++
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("read corpus: %w", err)
	}
	if err := w.Flush(); err != nil {
		return 0, 0, fmt.Errorf("flush staging file: %w", err)
	}

	return staged, dropped, nil
}

// enrich builds the searchable document from a corpus record. The
// bracketed rating annotation makes ranking and numeric facts jointly
// visible to free-text consumers downstream, even though BM25 itself
// scores only term overlap.
func enrich(rec corpusRecord) domain.Product {
	categories := rec.CategoriesStr
	if categories == "" {
		categories = strings.Join(rec.Categories, " ")
	}

	base := rec.AllText
	if base == "" {
		base = rec.Title
	}

	price := formatPrice(rec.Price)

	content := fmt.Sprintf("%s\nCategory: %s\nBrand: %s\nPrice: %s\n[Rating: %s stars | %d reviews]",
		base, categories, rec.Brand, price, rec.AverageRating, rec.RatingNumber)

	return domain.Product{
		ID:            rec.ProductID,
		Content:       content,
		Title:         rec.Title,
		AverageRating: rec.AverageRating,
		RatingNumber:  rec.RatingNumber,
		Brand:         rec.Brand,
		Price:         price,
	}
}

// formatPrice renders the corpus price field, which arrives as a
// number, a string, or nothing.
func formatPrice(price any) string {
	switch v := price.(type) {
	case float64:
		if v == 0 {
			return "N/A"
		}
		return "$" + strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if v == "" {
			return "N/A"
		}
		if strings.HasPrefix(v, "$") {
			return v
		}
		return "$" + v
	default:
		return "N/A"
	}
}

// construct builds the SQLite index from the staging file in a single
// transaction, replacing any previous index.
func (b *Builder) construct(ctx context.Context, fingerprint string) error {
	if err := os.MkdirAll(b.indexDir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	// A crashed prior build can leave WAL siblings behind; they must
	// go with the database or the fresh one inherits stale pages.
	dbPath := filepath.Join(b.indexDir, dbFileName)
	for _, stale := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale index: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open index database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertDoc, err := tx.PrepareContext(ctx, "INSERT INTO documents (id, raw) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare document insert: %w", err)
	}
	defer insertDoc.Close()

	insertPosting, err := tx.PrepareContext(ctx,
		"INSERT INTO postings (term, doc_id, tf, positions) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare posting insert: %w", err)
	}
	defer insertPosting.Close()

	insertStats, err := tx.PrepareContext(ctx, "INSERT INTO doc_stats (doc_id, length) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare stats insert: %w", err)
	}
	defer insertStats.Close()

	staging, err := os.Open(filepath.Join(b.stagingDir, "documents.jsonl"))
	if err != nil {
		return fmt.Errorf("open staging file: %w", err)
	}
	defer staging.Close()

	var docCount, totalLength int
	scanner := bufio.NewScanner(staging)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		var doc stagedDoc
		if err := json.Unmarshal(line, &doc); err != nil {
			// Staging wrote this file; a bad line here is a build bug.
			return fmt.Errorf("decode staged document: %w", err)
		}

		if _, err := insertDoc.ExecContext(ctx, doc.ID, string(line)); err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}

		tokens := analysis.Tokenize(doc.Content)
		if _, err := insertStats.ExecContext(ctx, doc.ID, len(tokens)); err != nil {
			return fmt.Errorf("insert stats %s: %w", doc.ID, err)
		}

		for term, posting := range postingsFor(tokens) {
			if _, err := insertPosting.ExecContext(ctx,
				term, doc.ID, posting.tf, posting.positions(),
			); err != nil {
				return fmt.Errorf("insert posting %q/%s: %w", term, doc.ID, err)
			}
		}

		docCount++
		totalLength += len(tokens)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read staging file: %w", err)
	}

	meta := map[string]string{
		metaSchemaVersion: schemaVersion,
		metaDocCount:      strconv.Itoa(docCount),
		metaTotalLength:   strconv.Itoa(totalLength),
		metaFingerprint:   fingerprint,
		metaBuiltAt:       time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO index_meta (key, value) VALUES (?, ?)", key, value,
		); err != nil {
			return fmt.Errorf("write metadata %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

// posting accumulates the occurrences of one term in one document.
type posting struct {
	tf  int
	pos []int
}

// positions serialises occurrence indices as a space-joined list.
func (p posting) positions() string {
	parts := make([]string, len(p.pos))
	for i, n := range p.pos {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// postingsFor folds a token stream into per-term postings.
func postingsFor(tokens []string) map[string]posting {
	m := make(map[string]posting)
	for i, tok := range tokens {
		p := m[tok]
		p.tf++
		p.pos = append(p.pos, i)
		m[tok] = p
	}
	return m
}

// corpusFingerprint derives the freshness fingerprint from the corpus
// file's size and modification time. Cheap to compute, and any corpus
// rewrite changes it.
func corpusFingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), nil
}
