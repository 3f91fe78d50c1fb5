package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about the catalogue",
	Long: `Answers a single question and exits. Retrieves matching products,
asks the language model for a product listing and prints it. Use
'shopscout chat' to drill into a listed product's reviews.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if assistantService == nil {
		cleanup, err := wireServices(ctx, false)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	turn, err := assistantService.Ask(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuestion) {
			return errors.New("question must not be empty")
		}
		return fmt.Errorf("ask failed: %w", err)
	}
	if turn.Err != nil {
		return fmt.Errorf("answer failed: %w", turn.Err)
	}

	cmd.Println(renderAnswer(turn))
	return nil
}
