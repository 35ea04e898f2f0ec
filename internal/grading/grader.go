package grading

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// errNoClassifier is reported when no classifier is configured.
var errNoClassifier = errors.New("no classifier configured")

// Request is one handwritten attempt at Char.
type Request struct {
	Token   Token
	Char    hanzi.Char
	Strokes []Stroke
}

// Result is the outcome of grading a Request. When Graded is false the
// classifier could not answer and Correct reflects the fail-open policy.
type Result struct {
	Token    Token
	Char     hanzi.Char
	Verdicts []Verdict
	Correct  bool
	Graded   bool

	// Recognized is the recognizer's guess, set when RecognizedOK.
	Recognized   hanzi.Char
	RecognizedOK bool

	// Err is why the attempt is ungraded.
	Err error
}

// Grader runs classification and recognition for an attempt.
type Grader struct {
	classifier Classifier
	recognizer Recognizer
	failOpen   bool
	logger     *slog.Logger
}

type GraderOption func(*Grader)

// WithFailOpen sets whether an ungraded attempt counts as correct.
// Learners are not penalised for an unreachable grader by default.
func WithFailOpen(v bool) GraderOption {
	return func(g *Grader) { g.failOpen = v }
}

func WithLogger(l *slog.Logger) GraderOption {
	return func(g *Grader) { g.logger = l }
}

// NewGrader builds a Grader. Either collaborator may be nil.
func NewGrader(c Classifier, r Recognizer, opts ...GraderOption) *Grader {
	g := &Grader{classifier: c, recognizer: r, failOpen: true, logger: slog.Default()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// FailOpen reports the configured policy.
func (g *Grader) FailOpen() bool { return g.failOpen }

// Grade never fails: service errors yield an ungraded Result. A
// recognizer failure alone leaves the attempt graded.
func (g *Grader) Grade(ctx context.Context, req Request) Result {
	res := Result{Token: req.Token, Char: req.Char}

	var (
		eg     errgroup.Group
		class  *Classification
		recErr error
	)

	eg.Go(func() error {
		if g.classifier == nil {
			return errNoClassifier
		}
		c, err := g.classifier.Classify(ctx, req.Char, req.Strokes)
		if err != nil {
			return err
		}
		class = c
		return nil
	})

	if g.recognizer != nil {
		eg.Go(func() error {
			res.Recognized, res.RecognizedOK, recErr = g.recognizer.Recognize(ctx, req.Strokes)
			return nil
		})
	}

	err := eg.Wait()
	if recErr != nil {
		g.logger.Warn("recognition failed", "char", req.Char, "error", recErr)
		res.Recognized, res.RecognizedOK = "", false
	}

	if err != nil {
		g.logger.Warn("attempt ungraded", "char", req.Char, "fail_open", g.failOpen, "error", err)
		res.Err = err
		res.Correct = g.failOpen
		return res
	}

	res.Graded = true
	res.Verdicts = Verdicts(class, len(req.Strokes))
	res.Correct = AllCorrect(res.Verdicts)
	return res
}
