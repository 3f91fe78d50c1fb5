package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive shopping assistant",
	Long: `Starts the interactive loop. Type a question (or 'exit' to quit);
after an answer that lists products, pick one by its list number to
read a summary of its customer reviews, or 'back' for the next
question.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("chat needs an interactive terminal; use 'shopscout ask' for scripted questions")
	}

	ctx := context.Background()

	if assistantService == nil {
		cleanup, err := wireServices(ctx, true)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	return runChatLoop(ctx, cmd, os.Stdin)
}

// runChatLoop drives one session: questions until 'exit' or EOF, with
// a review sub-loop after every answer that produced a listing. Each
// turn fully replaces the previous one; nothing carries across
// questions except the open adapters.
func runChatLoop(ctx context.Context, cmd *cobra.Command, in io.Reader) error {
	reader := bufio.NewReader(in)

	cmd.Println(styleHeading.Render("ShopScout"))
	cmd.Println("Ask about the catalogue. Type 'exit' to quit.")

	for {
		cmd.Print("\nquestion> ")
		question, ok := readInput(reader)
		if !ok {
			cmd.Println()
			return nil
		}
		if strings.EqualFold(question, "exit") {
			return nil
		}
		if question == "" {
			cmd.Println("Please type a question, or 'exit' to quit.")
			continue
		}

		turn, err := assistantService.Ask(ctx, question)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyQuestion) {
				cmd.Println("Please type a question, or 'exit' to quit.")
				continue
			}
			return fmt.Errorf("ask failed: %w", err)
		}
		if turn.Err != nil {
			cmd.Println(renderTurnError(turn.Err))
			continue
		}

		cmd.Println()
		cmd.Println(renderAnswer(turn))

		if turn.Listing.Empty() {
			continue
		}
		if done := reviewLoop(ctx, cmd, reader, turn.Listing); done {
			return nil
		}
	}
}

// reviewLoop handles selections against one listing until 'back'.
// Returns true when input ran out and the whole session should end.
func reviewLoop(ctx context.Context, cmd *cobra.Command, reader *bufio.Reader, listing domain.Listing) bool {
	for {
		cmd.Print("\nselect a product number for reviews, or 'back'> ")
		input, ok := readInput(reader)
		if !ok {
			cmd.Println()
			return true
		}
		if strings.EqualFold(input, "back") {
			return false
		}
		if strings.EqualFold(input, "exit") {
			return true
		}

		pos, err := strconv.Atoi(input)
		if err != nil {
			cmd.Println("Enter a number from the list, or 'back'.")
			continue
		}
		entry, found := listing.ByPosition(pos)
		if !found {
			cmd.Printf("No product %d in the list.\n", pos)
			continue
		}

		if reviewService == nil {
			cmd.Println("Review lookup is not available in this session.")
			return false
		}

		summary, err := reviewService.Summarize(ctx, entry.ProductID, entry.Title)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			cmd.Printf("No reviews found for %s.\n", entry.Title)
		case errors.Is(err, domain.ErrLLMUnavailable):
			cmd.Println("Review summaries need a reachable model; none is available.")
		case err != nil:
			cmd.Println(styleError.Render(fmt.Sprintf("Could not summarise reviews: %v", err)))
		default:
			cmd.Println()
			cmd.Println(renderSummary(entry.Title, summary))
		}
	}
}

// readInput reads one trimmed line; ok is false when input ran out.
func readInput(reader *bufio.Reader) (string, bool) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
