// Package practice is the study screen for both deck and active mode.
package practice

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/grading"
	"github.com/abhisek/hanzi/internal/hanzi"
	practicesvc "github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/screens/summary"
	"github.com/abhisek/hanzi/internal/sentence"
	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/spacedrep"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
)

type phase int

const (
	phasePrompt   phase = iota
	phaseRevealed       // deck mode: definition shown, waiting for a grade
	phaseGrading        // active mode: answer submitted, waiting for the result
	phaseFeedback       // active mode: result shown
	phaseEmpty          // nothing to study
)

// Options configure a practice run.
type Options struct {
	Mode      session.Mode
	DeckRef   string
	QueueSize int
}

// Screen runs one practice session.
type Screen struct {
	ctx  context.Context
	svc  *practicesvc.Service
	opts Options

	queue practicesvc.Queue
	clues map[hanzi.Char][]*deck.Card
	index int
	phase phase

	input       components.TextInput
	token       grading.Token
	lastCorrect bool
	overridden  bool
	answered    int

	sentence        *sentence.Pair
	sentenceLoading bool
	sentenceErr     string

	quitConfirm bool
	warn        string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.EscapeHandler   = (*Screen)(nil)
)

// New creates a practice screen. The session starts when the screen is
// pushed.
func New(ctx context.Context, svc *practicesvc.Service, opts Options) *Screen {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 20
	}
	return &Screen{
		ctx:   ctx,
		svc:   svc,
		opts:  opts,
		input: components.NewTextInput("type the character", 8),
	}
}

// Init builds the queue and starts the session.
func (s *Screen) Init() tea.Cmd {
	s.queue = s.svc.StudyQueue(s.opts.Mode, s.opts.DeckRef, s.opts.QueueSize)
	if s.queue.Len() == 0 {
		s.phase = phaseEmpty
		return nil
	}
	s.clues = clueIndex(s.queue.Cards)
	if _, err := s.svc.StartSession(s.ctx, s.queue.Mode); err != nil {
		s.warn = err.Error()
	}
	return s.beginPrompt()
}

func (s *Screen) Title() string {
	if s.queue.Mode == session.ModeActive {
		return "Active Practice"
	}
	return "Deck Review"
}

// HandlesEscape keeps Esc for the quit confirmation while a session runs.
func (s *Screen) HandlesEscape() bool {
	return s.phase != phaseEmpty
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.phase {
	case phaseEmpty:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case phaseRevealed:
		return []layout.KeyHint{
			{Key: "0-2", Description: "Forgot"},
			{Key: "3-5", Description: "Recalled"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseFeedback:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if !s.lastCorrect && !s.overridden {
			hints = append(hints, layout.KeyHint{Key: "O", Description: "I was right"})
		}
		return hints
	}
	if s.queue.Mode == session.ModeActive {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Sentence"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Reveal"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradedMsg:
		return s.handleGraded(msg)
	case sentenceMsg:
		return s.handleSentence(msg)
	case endMsg:
		return s.handleEnd()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptsInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) acceptsInput() bool {
	return s.queue.Mode == session.ModeActive && s.phase == phasePrompt && !s.quitConfirm
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseEmpty {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return endMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	switch s.phase {
	case phasePrompt:
		if s.queue.Mode == session.ModeActive {
			return s.handleActiveKey(msg)
		}
		if key == "space" || key == " " || key == "enter" {
			s.phase = phaseRevealed
		}
	case phaseRevealed:
		if q, err := spacedrep.ParseQuality(key); err == nil && len(key) == 1 {
			return s.review(q)
		}
	case phaseFeedback:
		if (key == "o" || key == "O") && !s.lastCorrect && !s.overridden {
			return s.override()
		}
		if key == "enter" || key == "space" || key == " " {
			return s.advance()
		}
	}
	return s, nil
}

func (s *Screen) handleActiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s.submit()
	case "tab":
		return s, s.requestSentence()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// beginPrompt resets per-prompt state and issues a token for the target.
func (s *Screen) beginPrompt() tea.Cmd {
	s.phase = phasePrompt
	s.overridden = false
	s.lastCorrect = false
	if s.queue.Mode != session.ModeActive {
		return nil
	}
	s.input.Reset()
	s.token = s.svc.IssueToken(s.currentChar().String())
	return s.input.Init()
}

func (s *Screen) currentChar() hanzi.Char {
	if s.index < len(s.queue.Chars) {
		return s.queue.Chars[s.index]
	}
	return ""
}

func (s *Screen) currentCard() *deck.Card {
	if s.index < len(s.queue.Cards) {
		return s.queue.Cards[s.index]
	}
	return nil
}

// submit grades the typed answer off the update loop. The result is
// applied when gradedMsg arrives.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	if answer == "" {
		return s, nil
	}
	s.phase = phaseGrading
	svc, tok, target := s.svc, s.token, s.currentChar()
	return s, func() tea.Msg {
		return gradedMsg{Result: svc.SubmitTyped(tok, target, answer)}
	}
}

func (s *Screen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	applied, err := s.svc.ApplyAttempt(s.ctx, msg.Result)
	if err != nil {
		s.warn = err.Error()
	}
	if !applied {
		return s, nil
	}
	s.answered++
	s.lastCorrect = msg.Result.Correct
	s.input.Submit(msg.Result.Correct)
	s.phase = phaseFeedback
	return s, nil
}

func (s *Screen) override() (screen.Screen, tea.Cmd) {
	if err := s.svc.OverrideCorrect(s.ctx, s.currentChar()); err != nil {
		s.warn = err.Error()
	}
	s.overridden = true
	return s, nil
}

func (s *Screen) review(q spacedrep.Quality) (screen.Screen, tea.Cmd) {
	card := s.currentCard()
	if card == nil {
		return s.advance()
	}
	deckID := ""
	if d, _ := s.svc.Collection().FindCard(card.ID); d != nil {
		deckID = d.ID
	}
	if _, err := s.svc.ReviewCard(s.ctx, deckID, card.ID, q); err != nil {
		s.warn = err.Error()
	}
	s.answered++
	return s.advance()
}

func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	s.index++
	if s.index >= s.queue.Len() {
		return s, func() tea.Msg { return endMsg{} }
	}
	return s, s.beginPrompt()
}

// requestSentence snapshots the generator input here and runs generation
// in a command.
func (s *Screen) requestSentence() tea.Cmd {
	gen := s.svc.Generator()
	if gen == nil {
		s.sentenceErr = practicesvc.ErrNoGenerator.Error()
		return nil
	}
	if s.sentenceLoading {
		return nil
	}
	s.sentenceLoading = true
	s.sentenceErr = ""
	ctx, in := s.ctx, s.svc.SentenceInput(s.opts.DeckRef)
	return func() tea.Msg {
		p, err := gen.Generate(ctx, in)
		return sentenceMsg{Pair: p, Err: err}
	}
}

func (s *Screen) handleSentence(msg sentenceMsg) (screen.Screen, tea.Cmd) {
	s.sentenceLoading = false
	if msg.Err != nil {
		s.sentenceErr = msg.Err.Error()
		return s, nil
	}
	s.svc.RememberSentence(msg.Pair)
	s.sentence = msg.Pair
	return s, nil
}

func (s *Screen) handleEnd() (screen.Screen, tea.Cmd) {
	if !s.svc.InSession() {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	sum, err := s.svc.EndSession(s.ctx)
	if err != nil {
		s.warn = err.Error()
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// clueIndex maps each character to the cards whose term contains it.
func clueIndex(cards []*deck.Card) map[hanzi.Char][]*deck.Card {
	idx := make(map[hanzi.Char][]*deck.Card)
	for _, c := range cards {
		for _, ch := range c.Chars() {
			idx[ch] = append(idx[ch], c)
		}
	}
	return idx
}

// maskTerm hides every occurrence of c in term.
func maskTerm(term string, c hanzi.Char) string {
	return strings.ReplaceAll(term, c.String(), "＿")
}
