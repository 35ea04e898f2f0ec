package grading

import "sync"

// Token identifies the practice target an async request was made for.
type Token struct {
	Target string
	Seq    uint64
}

// Tokens issues request tokens and remembers the latest one, so results
// for a target the learner has moved past can be dropped.
type Tokens struct {
	mu      sync.Mutex
	seq     uint64
	current Token
}

// Issue makes target current and returns its token. Any earlier token
// becomes stale, even one for the same target.
func (t *Tokens) Issue(target string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.current = Token{Target: target, Seq: t.seq}
	return t.current
}

// Current reports whether tok is the most recently issued token.
func (t *Tokens) Current(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tok.Seq != 0 && tok == t.current
}

// Invalidate makes every issued token stale.
func (t *Tokens) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = Token{}
}
