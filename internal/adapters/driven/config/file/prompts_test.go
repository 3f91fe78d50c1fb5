package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopscout-labs/shopscout-cli/internal/core/listing"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	require.NotNil(t, store)

	// Constructor performs no I/O
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	if _, err := os.UserHomeDir(); err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptListing)
	require.NoError(t, err)

	for _, name := range []string{driven.PromptListing, driven.PromptRelevanceFilter, driven.PromptReviewSummary} {
		_, statErr := os.Stat(filepath.Join(dir, name+".txt"))
		assert.NoError(t, statErr, "prompt file %q should be seeded", name)
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Load(driven.PromptListing)

	require.NoError(t, err)
	assert.Equal(t, listing.DefaultPrompt, got)
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "List products for: %s\nContext: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptListing+".txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	got, err := store.Load(driven.PromptListing)

	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")

	assert.Error(t, err)
}

func TestPromptStore_Load_EmptyFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptReviewSummary+".txt"), []byte("   \n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	got, err := store.Load(driven.PromptReviewSummary)

	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestPromptStore_Load_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptListing+".txt"), []byte("\n\ncustom %s %s\n\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	got, err := store.Load(driven.PromptListing)

	require.NoError(t, err)
	assert.Equal(t, "custom %s %s", got)
}

func TestPromptStore_Load_CachesResults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptListing)
	require.NoError(t, err)

	// Changing the file is invisible until Reload
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptListing+".txt"), []byte("changed %s %s"), 0600))

	second, err := store.Load(driven.PromptListing)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptListing)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptListing+".txt"), []byte("changed %s %s"), 0600))
	store.Reload()

	got, err := store.Load(driven.PromptListing)
	require.NoError(t, err)
	assert.Equal(t, "changed %s %s", got)
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := "my own listing prompt %s %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptListing+".txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Lazy init seeds the missing files only
	_, err = store.Load(driven.PromptReviewSummary)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, driven.PromptListing+".txt"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestPromptStore_ConcurrentLoad(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			_, _ = store.Load(driven.PromptListing)
			_, _ = store.Load(driven.PromptReviewSummary)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
