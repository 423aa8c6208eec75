package suggest

import "github.com/bastiangx/prefixserve/pkg/trie"

// LengthLimiter wraps an Iterator and stops after k distinct word lengths
// instead of after k words. Matches arrive grouped by length, so this keeps
// whole groups like "oneapple" and "onedrive" together.
//
// The budget starts at k and is spent once for the first word and once per
// length change. Iteration continues while the budget is non-negative, so
// the group in progress when the budget reaches zero is still emitted.
type LengthLimiter struct {
	src  trie.Iterator
	next string
	ok   bool
	left int
}

// NewLengthLimiter creates a LengthLimiter over src and pulls its first element.
func NewLengthLimiter(src trie.Iterator, k int) *LengthLimiter {
	l := &LengthLimiter{src: src, left: k}
	if src.HasNext() {
		if w, err := src.Next(); err == nil {
			l.next = w
			l.ok = true
			l.left--
		}
	}
	return l
}

func (l *LengthLimiter) HasNext() bool {
	return l.ok && l.left >= 0
}

func (l *LengthLimiter) Next() (string, error) {
	if !l.HasNext() {
		return "", trie.ErrIterationExhausted
	}
	current := l.next
	l.ok = false
	if l.src.HasNext() {
		if w, err := l.src.Next(); err == nil {
			l.next = w
			l.ok = true
			if len(w) != len(current) {
				l.left--
			}
		}
	}
	return current, nil
}
