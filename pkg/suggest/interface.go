// Package suggest is the core facade, gating queries by length and shaping trie prefix matches into autocomplete suggestions.
package suggest

import "github.com/bastiangx/prefixserve/pkg/trie"

// IMatcher defines the interface for prefix suggestion engines
type IMatcher interface {
	// Load splits strings on whitespace and stores every long enough token
	Load(strings ...string) int

	// Contains reports whether word is stored
	Contains(word string) bool

	// Delete removes word, reporting whether it was stored
	Delete(word string) bool

	// WordsWithPrefix returns matches for prefix limited to the default number of lengths
	WordsWithPrefix(prefix string) (trie.Iterator, error)

	// WordsWithPrefixK returns matches for prefix limited to k distinct lengths
	WordsWithPrefixK(prefix string, k int) (trie.Iterator, error)

	// Size returns the number of stored words
	Size() int
}
