// Package trie provides the associative prefix structures backing prefixserve.
// Keys are restricted to the lowercase alphabet a-z and map to an integer weight.
package trie

import (
	"errors"
	"fmt"
	"iter"
)

// Backend names accepted by New.
const (
	BackendRWay     = "rway"
	BackendPatricia = "patricia"
)

var (
	// ErrIterationExhausted is returned by Iterator.Next once HasNext reports false.
	ErrIterationExhausted = errors.New("iteration exhausted")
	// ErrUnknownBackend is returned by New for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown trie backend")
)

// Tuple is a key and the weight stored for it on insert.
type Tuple struct {
	Term   string
	Weight int
}

// NewTuple creates a Tuple.
func NewTuple(term string, weight int) Tuple {
	return Tuple{Term: term, Weight: weight}
}

// Trie defines the operations shared by every backend
type Trie interface {
	// Add stores t.Term with t.Weight unless the key is already present.
	// It reports whether a new key was stored.
	Add(t Tuple) bool

	// Contains reports whether word is a stored key.
	Contains(word string) bool

	// Delete removes word and reports whether it was present.
	Delete(word string) bool

	// Words enumerates every stored key.
	Words() Iterator

	// WordsWithPrefix enumerates stored keys starting with prefix,
	// shorter keys first and siblings in alphabetical order.
	WordsWithPrefix(prefix string) Iterator

	// Weight returns the weight stored for word.
	Weight(word string) (int, bool)

	// Size returns the number of stored keys.
	Size() int
}

// New creates an empty trie of the named backend. An empty name selects RWayTrie.
func New(backend string) (Trie, error) {
	switch backend {
	case "", BackendRWay:
		return NewRWayTrie(), nil
	case BackendPatricia:
		return NewPatriciaTrie(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Iterator is a single-use cursor over strings.
type Iterator interface {
	HasNext() bool
	Next() (string, error)
}

// Collect drains it into a slice.
func Collect(it Iterator) []string {
	words := []string{}
	for it.HasNext() {
		w, err := it.Next()
		if err != nil {
			break
		}
		words = append(words, w)
	}
	return words
}

// All adapts it to a range-over-func sequence. The sequence consumes it.
func All(it Iterator) iter.Seq[string] {
	return func(yield func(string) bool) {
		for it.HasNext() {
			w, err := it.Next()
			if err != nil || !yield(w) {
				return
			}
		}
	}
}

type sliceIterator struct {
	words []string
	pos   int
}

// FromSlice returns an Iterator over words in order.
func FromSlice(words []string) Iterator {
	return &sliceIterator{words: words}
}

func (it *sliceIterator) HasNext() bool {
	return it.pos < len(it.words)
}

func (it *sliceIterator) Next() (string, error) {
	if !it.HasNext() {
		return "", ErrIterationExhausted
	}
	w := it.words[it.pos]
	it.pos++
	return w, nil
}

// InAlphabet reports whether key is non-empty and made only of a-z.
func InAlphabet(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if _, ok := toIndex(key[i]); !ok {
			return false
		}
	}
	return true
}
