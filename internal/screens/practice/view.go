package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.phase == phaseEmpty {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing to study right now. Add cards or come back later.")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.queue.Mode == session.ModeActive {
		b.WriteString(s.renderActive(width))
	} else {
		b.WriteString(s.renderDeck(width))
	}

	if s.quitConfirm {
		b.WriteString("\n\n")
		b.WriteString(layout.Center(width, theme.Card.Render("End this session? (y/n)")))
	}
	if s.warn != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error).Render("! "+s.warn)))
	}
	return b.String()
}

func (s *Screen) renderInfoLine(width int) string {
	agg := s.svc.Aggregator()
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %d / %d", min(s.index+1, s.queue.Len()), s.queue.Len()))
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  streak %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			agg.Current().Correct,
			agg.Streak()))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad <= 0 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *Screen) renderDeck(width int) string {
	card := s.currentCard()
	if card == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(layout.Center(width, theme.Prompt.Render(card.Term)))
	b.WriteString("\n\n")

	if s.phase == phasePrompt {
		b.WriteString(layout.Center(width, theme.Hint.Render("press space to reveal")))
		return b.String()
	}

	def := card.Definition
	if def == "" {
		def = "(no definition)"
	}
	b.WriteString(layout.Center(width, theme.Body.Render(def)))
	if card.Notes != "" {
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Hint.Render(card.Notes)))
	}
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Subtitle.Render("How well did you recall it? 0 blank … 5 perfect")))
	return b.String()
}

func (s *Screen) renderActive(width int) string {
	c := s.currentChar()
	var b strings.Builder

	clues := s.clues[c]
	if len(clues) == 0 {
		b.WriteString(layout.Center(width, theme.Subtitle.Render("Write this character")))
		b.WriteString("\n\n")
		b.WriteString(layout.Center(width, theme.Prompt.Render(c.String())))
	} else {
		b.WriteString(layout.Center(width, theme.Subtitle.Render("Which character fills the gap?")))
		b.WriteString("\n\n")
		for i, card := range clues {
			if i == 3 {
				break
			}
			line := maskTerm(card.Term, c)
			if card.Definition != "" {
				line += "  " + theme.Hint.Render(card.Definition)
			}
			b.WriteString(layout.Center(width, theme.Body.Render(line)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(layout.Center(width, "Answer: "+s.input.View()))
	b.WriteString("\n\n")

	switch s.phase {
	case phaseGrading:
		b.WriteString(layout.Center(width, theme.Hint.Render("grading…")))
	case phaseFeedback:
		b.WriteString(layout.Center(width, s.renderFeedback()))
	}

	if sent := s.renderSentence(width); sent != "" {
		b.WriteString("\n\n")
		b.WriteString(sent)
	}
	return b.String()
}

func (s *Screen) renderFeedback() string {
	c := s.currentChar()
	switch {
	case s.overridden:
		return theme.Correct.Render("Counted as correct.")
	case s.lastCorrect:
		return theme.Correct.Render("Correct!")
	default:
		return theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %s", c))
	}
}

func (s *Screen) renderSentence(width int) string {
	switch {
	case s.sentenceLoading:
		return layout.Center(width, theme.Hint.Render("writing a sentence…"))
	case s.sentenceErr != "":
		return layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error).Render(s.sentenceErr))
	case s.sentence == nil:
		return ""
	}
	var b strings.Builder
	b.WriteString(layout.Center(width, theme.Body.Bold(true).Render(s.sentence.Native)))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Hint.Render(s.sentence.Gloss)))
	return b.String()
}
