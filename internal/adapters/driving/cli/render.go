package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

// Console styles. Lipgloss degrades to plain text when the output is
// not a terminal, so piped output stays clean.
var (
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	styleAnswer  = lipgloss.NewStyle().PaddingLeft(1)
)

// renderAnswer formats a completed turn: the synthesised answer plus,
// when a listing parsed, a hint about the follow-up selection.
func renderAnswer(turn *domain.Turn) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("Answer"))
	b.WriteString("\n")
	b.WriteString(styleAnswer.Render(turn.AnswerText))
	if !turn.Listing.Empty() {
		noun := "products"
		if turn.Listing.Len() == 1 {
			noun = "product"
		}
		b.WriteString("\n\n")
		b.WriteString(styleMuted.Render(fmt.Sprintf("%d %s listed.", turn.Listing.Len(), noun)))
	}
	return b.String()
}

// renderSummary formats a review summary under the product's title.
func renderSummary(title, summary string) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("Reviews: " + title))
	b.WriteString("\n")
	b.WriteString(styleAnswer.Render(summary))
	return b.String()
}

// renderTurnError formats a turn-level failure as a user message.
func renderTurnError(err error) string {
	return styleError.Render(fmt.Sprintf("Could not answer that: %v", err))
}
