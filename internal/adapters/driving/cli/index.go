package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopscout-labs/shopscout-cli/internal/adapters/driven/index/sqlite"
	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the catalogue index",
	Long: `Builds the BM25 index from the catalogue corpus.
An existing index whose corpus fingerprint still matches is left
untouched; a changed corpus forces a full rebuild.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

// newIndexBuilder is a seam for tests.
var newIndexBuilder = func(settings domain.Settings) driven.IndexBuilder {
	return sqlite.NewBuilder(settings.DataDir, settings.CatalogueName)
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	settings := loadAppSettings()
	builder := newIndexBuilder(settings)

	cmd.Printf("Building index for catalogue %q...\n", settings.CatalogueName)

	result, err := builder.Build(context.Background())
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if result.Skipped {
		cmd.Println("Index is up to date, nothing to do.")
		return nil
	}

	cmd.Printf("Indexed %d documents (%d dropped).\n", result.Indexed, result.Dropped)
	return nil
}
