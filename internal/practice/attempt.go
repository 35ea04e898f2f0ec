package practice

import (
	"context"

	"github.com/abhisek/hanzi/internal/grading"
	"github.com/abhisek/hanzi/internal/hanzi"
)

// IssueToken makes target the current practice target. Results carrying
// any earlier token will be dropped by ApplyAttempt.
func (s *Service) IssueToken(target string) grading.Token {
	return s.tokens.Issue(target)
}

// SubmitAttempt grades a handwritten attempt. It touches no state and may
// run on any goroutine; hand the result to ApplyAttempt.
func (s *Service) SubmitAttempt(ctx context.Context, tok grading.Token, c hanzi.Char, strokes []grading.Stroke) grading.Result {
	return s.grader.Grade(ctx, grading.Request{Token: tok, Char: c, Strokes: strokes})
}

// ApplyAttempt records a grading result if its token is still current and
// reports whether it did. A result is applied at most once.
func (s *Service) ApplyAttempt(ctx context.Context, res grading.Result) (bool, error) {
	if !s.tokens.Current(res.Token) {
		s.logger.Debug("dropping stale grading result",
			"target", res.Token.Target, "seq", res.Token.Seq, "char", res.Char)
		return false, nil
	}
	s.tokens.Invalidate()
	return true, s.recordCharacter(ctx, res.Char, res.Correct, res.Graded, grading.VerdictStrings(res.Verdicts))
}

// SubmitTyped grades a typed answer by exact character match. The terminal
// UI has no stroke capture, so this stands in for the recognizer. Like
// SubmitAttempt it touches no state.
func (s *Service) SubmitTyped(tok grading.Token, c hanzi.Char, answer string) grading.Result {
	got, err := hanzi.ParseChar(answer)
	return grading.Result{
		Token:        tok,
		Char:         c,
		Correct:      err == nil && got == c,
		Graded:       true,
		Recognized:   got,
		RecognizedOK: err == nil,
	}
}
