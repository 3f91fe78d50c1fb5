package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDropsBadRecords(t *testing.T) {
	chdir(t, t.TempDir())

	writeCorpus(t, "catalogue",
		productLine("B0TESTID01", "Kettle", "kettle", 4.0, 1),
		`{"title":"no id here"}`,
		`{"product_id":"B0TESTID02"}`,
		`not json at all`,
		``,
		productLine("B0TESTID03", "Toaster", "toaster", 4.0, 1),
	)

	b := NewBuilder("dataset", "catalogue")
	result, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.Indexed)
	// Missing id, missing title, malformed JSON. The blank line is not
	// a record at all.
	assert.Equal(t, 3, result.Dropped)
}

func TestBuildIdempotent(t *testing.T) {
	chdir(t, t.TempDir())

	writeCorpus(t, "catalogue", productLine("B0TESTID01", "Kettle", "kettle", 4.0, 1))

	b := NewBuilder("dataset", "catalogue")

	first, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	second, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Skipped, "unchanged corpus must short-circuit")
	assert.Zero(t, second.Indexed)

	// The skipped build still leaves a queryable index.
	e := openTestEngine(t, b)
	got, err := e.Search(context.Background(), "kettle", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBuildRebuildsOnCorpusChange(t *testing.T) {
	chdir(t, t.TempDir())

	corpusPath := writeCorpus(t, "catalogue", productLine("B0TESTID01", "Kettle", "kettle", 4.0, 1))

	b := NewBuilder("dataset", "catalogue")
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	// Rewrite the corpus: the fingerprint (size+mtime) changes, so the
	// existence check alone must not be trusted.
	writeCorpus(t, "catalogue",
		productLine("B0TESTID01", "Kettle", "kettle", 4.0, 1),
		productLine("B0TESTID02", "Fridge", "fridge", 4.0, 1),
	)
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(corpusPath, future, future))

	result, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped, "fingerprint mismatch means rebuild, not skip")
	assert.Equal(t, 2, result.Indexed)

	e := openTestEngine(t, b)
	got, err := e.Search(context.Background(), "fridge", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBuildDropsDuplicateProductIDs(t *testing.T) {
	chdir(t, t.TempDir())

	writeCorpus(t, "catalogue",
		productLine("B0TESTID01", "Kettle", "kettle", 4.0, 1),
		productLine("B0TESTID01", "Kettle Again", "duplicate kettle", 3.0, 2),
		productLine("B0TESTID02", "Toaster", "toaster", 4.0, 1),
	)

	b := NewBuilder("dataset", "catalogue")
	result, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 1, result.Dropped)

	// The first occurrence wins.
	e := openTestEngine(t, b)
	got, err := e.Search(context.Background(), "kettle", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotContains(t, got[0].Passage.Text(), "duplicate")
}

func TestBuildClearsStaleWALFiles(t *testing.T) {
	chdir(t, t.TempDir())

	writeCorpus(t, "catalogue", productLine("B0TESTID01", "Kettle", "kettle", 4.0, 1))

	// Leftovers of a build that died mid-write: an unreadable database
	// plus orphaned WAL siblings. No stored fingerprint can be read, so
	// the build must rebuild and clear all three files.
	indexDir := filepath.Join("indexes", "catalogue")
	require.NoError(t, os.MkdirAll(indexDir, 0o755))
	dbPath := filepath.Join(indexDir, "index.db")
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		require.NoError(t, os.WriteFile(path, []byte("partial write"), 0o644))
	}

	b := NewBuilder("dataset", "catalogue")
	result, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.Indexed)

	e := openTestEngine(t, b)
	got, err := e.Search(context.Background(), "kettle", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBuildMissingCorpusIsFatal(t *testing.T) {
	chdir(t, t.TempDir())

	b := NewBuilder("dataset", "missing")
	_, err := b.Build(context.Background())
	assert.Error(t, err)
}

func TestBuildWritesStagingFile(t *testing.T) {
	chdir(t, t.TempDir())

	writeCorpus(t, "catalogue", productLine("B0TESTID01", "Test Kettle", "boils water", 4.5, 120))

	b := NewBuilder("dataset", "catalogue")
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("processed_corpus", "catalogue", "documents.jsonl"))
	require.NoError(t, err)

	staged := string(data)
	assert.Contains(t, staged, `"id":"B0TESTID01"`)
	assert.Contains(t, staged, `"product_id":"B0TESTID01"`)
	assert.Contains(t, staged, `[Rating: 4.5 stars | 120 reviews]`)
	assert.Contains(t, staged, `Brand: Acme`)
	assert.Contains(t, staged, `Price: $24.99`)
}

func TestEnrichPriceFormats(t *testing.T) {
	tests := []struct {
		name  string
		price any
		want  string
	}{
		{name: "number", price: 24.99, want: "$24.99"},
		{name: "string", price: "19.95", want: "$19.95"},
		{name: "dollar string", price: "$9.99", want: "$9.99"},
		{name: "missing", price: nil, want: "N/A"},
		{name: "empty string", price: "", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPrice(tt.price))
		})
	}
}

func TestEnrichFallsBackToTitleText(t *testing.T) {
	p := enrich(corpusRecord{
		ProductID:  "B0TESTID01",
		Title:      "Bare Kettle",
		Categories: []string{"Appliances", "Kitchen"},
	})

	assert.Contains(t, p.Content, "Bare Kettle")
	assert.Contains(t, p.Content, "Category: Appliances Kitchen")
	assert.Contains(t, p.Content, "[Rating: N/A stars | 0 reviews]")
}
