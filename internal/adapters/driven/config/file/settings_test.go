package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

// clearEnv unsets every settings variable so the ambient environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvModel, EnvBaseURL, EnvLLMTimeout, EnvCatalogue, EnvDataDir,
		EnvRetrieverK, EnvBM25K1, EnvBM25B, EnvReviewFile, EnvReviewCap, EnvFilter,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	got := LoadSettings(nil)

	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestLoadSettings_FromStore(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "mistral"))
	require.NoError(t, store.Set("llm.timeout_seconds", 30))
	require.NoError(t, store.Set("catalogue.name", "meta_Garden_cleaned"))
	require.NoError(t, store.Set("retriever.k", 5))
	require.NoError(t, store.Set("retriever.k1", 1.2))
	require.NoError(t, store.Set("filter.enabled", true))

	got := LoadSettings(store)

	assert.Equal(t, "mistral", got.LLMModel)
	assert.Equal(t, 30*time.Second, got.LLMTimeout)
	assert.Equal(t, "meta_Garden_cleaned", got.CatalogueName)
	assert.Equal(t, 5, got.RetrieverK)
	assert.Equal(t, 1.2, got.BM25K1)
	assert.True(t, got.FilterEnabled)

	// Untouched keys keep their defaults
	assert.Equal(t, domain.DefaultSettings().BM25B, got.BM25B)
	assert.Equal(t, domain.DefaultSettings().ReviewCap, got.ReviewCap)
}

func TestLoadSettings_EnvOverridesStore(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "mistral"))
	require.NoError(t, store.Set("retriever.k", 5))

	t.Setenv(EnvModel, "qwen2.5")
	t.Setenv(EnvRetrieverK, "7")
	t.Setenv(EnvBM25B, "0.5")
	t.Setenv(EnvFilter, "true")

	got := LoadSettings(store)

	assert.Equal(t, "qwen2.5", got.LLMModel)
	assert.Equal(t, 7, got.RetrieverK)
	assert.Equal(t, 0.5, got.BM25B)
	assert.True(t, got.FilterEnabled)
}

func TestLoadSettings_IgnoresInvalidEnvValues(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	t.Setenv(EnvRetrieverK, "-3")
	t.Setenv(EnvBM25K1, "not a number")
	t.Setenv(EnvLLMTimeout, "0")
	t.Setenv(EnvFilter, "maybe")

	got := LoadSettings(nil)

	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.RetrieverK, got.RetrieverK)
	assert.Equal(t, defaults.BM25K1, got.BM25K1)
	assert.Equal(t, defaults.LLMTimeout, got.LLMTimeout)
	assert.Equal(t, defaults.FilterEnabled, got.FilterEnabled)
}

func TestLoadSettings_DotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables already present, so the one
	// under test must be truly unset (clearEnv only blanks it).
	require.NoError(t, os.Unsetenv(EnvCatalogue))

	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"), []byte(EnvCatalogue+"=meta_Kitchen_cleaned\n"), 0600))

	got := LoadSettings(nil)

	assert.Equal(t, "meta_Kitchen_cleaned", got.CatalogueName)
}
