package file

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// Environment variable names. Each overrides the corresponding config
// file key; every setting is optional and falls back to the built-in
// default.
const (
	EnvModel      = "SHOPSCOUT_MODEL"
	EnvBaseURL    = "SHOPSCOUT_BASE_URL"
	EnvLLMTimeout = "SHOPSCOUT_LLM_TIMEOUT_SECONDS"
	EnvCatalogue  = "SHOPSCOUT_CATALOGUE"
	EnvDataDir    = "SHOPSCOUT_DATA_DIR"
	EnvRetrieverK = "SHOPSCOUT_RETRIEVER_K"
	EnvBM25K1     = "SHOPSCOUT_BM25_K1"
	EnvBM25B      = "SHOPSCOUT_BM25_B"
	EnvReviewFile = "SHOPSCOUT_REVIEW_FILE"
	EnvReviewCap  = "SHOPSCOUT_REVIEW_CAP"
	EnvFilter     = "SHOPSCOUT_FILTER_ENABLED"
)

// LoadSettings resolves the effective settings: built-in defaults,
// overridden by the config store, overridden by the environment.
// A .env file in the working directory is loaded first when present.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	s := domain.DefaultSettings()

	if store != nil {
		applyStore(&s, store)
	}
	applyEnv(&s)
	return s
}

// applyStore overlays config-file values onto the defaults.
func applyStore(s *domain.Settings, store driven.ConfigStore) {
	if v := store.GetString("llm.model"); v != "" {
		s.LLMModel = v
	}
	if v := store.GetString("llm.base_url"); v != "" {
		s.LLMBaseURL = v
	}
	if v := store.GetInt("llm.timeout_seconds"); v > 0 {
		s.LLMTimeout = time.Duration(v) * time.Second
	}
	if v := store.GetString("catalogue.name"); v != "" {
		s.CatalogueName = v
	}
	if v := store.GetString("catalogue.data_dir"); v != "" {
		s.DataDir = v
	}
	if v := store.GetInt("retriever.k"); v > 0 {
		s.RetrieverK = v
	}
	if v := store.GetFloat("retriever.k1"); v > 0 {
		s.BM25K1 = v
	}
	if v := store.GetFloat("retriever.b"); v > 0 {
		s.BM25B = v
	}
	if v := store.GetString("reviews.file"); v != "" {
		s.ReviewFile = v
	}
	if v := store.GetInt("reviews.max_per_summary"); v > 0 {
		s.ReviewCap = v
	}
	if _, ok := store.Get("filter.enabled"); ok {
		s.FilterEnabled = store.GetBool("filter.enabled")
	}
}

// applyEnv overlays environment variables onto the settings.
func applyEnv(s *domain.Settings) {
	if v := os.Getenv(EnvModel); v != "" {
		s.LLMModel = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		s.LLMBaseURL = v
	}
	if v, ok := envInt(EnvLLMTimeout); ok {
		s.LLMTimeout = time.Duration(v) * time.Second
	}
	if v := os.Getenv(EnvCatalogue); v != "" {
		s.CatalogueName = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		s.DataDir = v
	}
	if v, ok := envInt(EnvRetrieverK); ok {
		s.RetrieverK = v
	}
	if v, ok := envFloat(EnvBM25K1); ok {
		s.BM25K1 = v
	}
	if v, ok := envFloat(EnvBM25B); ok {
		s.BM25B = v
	}
	if v := os.Getenv(EnvReviewFile); v != "" {
		s.ReviewFile = v
	}
	if v, ok := envInt(EnvReviewCap); ok {
		s.ReviewCap = v
	}
	if v := os.Getenv(EnvFilter); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.FilterEnabled = b
		}
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("Ignoring invalid %s=%q", name, v)
		return 0, false
	}
	return n, true
}

func envFloat(name string) (float64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		logger.Warn("Ignoring invalid %s=%q", name, v)
		return 0, false
	}
	return f, true
}
