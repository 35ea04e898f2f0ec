package practice

import (
	"github.com/abhisek/hanzi/internal/grading"
	"github.com/abhisek/hanzi/internal/sentence"
)

// gradedMsg carries a grading result back to Update.
type gradedMsg struct {
	Result grading.Result
}

// sentenceMsg carries a generated sentence back to Update.
type sentenceMsg struct {
	Pair *sentence.Pair
	Err  error
}

// endMsg ends the run and shows the summary.
type endMsg struct{}
