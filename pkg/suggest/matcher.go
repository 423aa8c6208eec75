package suggest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/prefixserve/internal/logger"
	"github.com/bastiangx/prefixserve/pkg/trie"
	"github.com/charmbracelet/log"
)

const (
	// MinWordLength is the shortest word stored by Load and the shortest accepted prefix.
	MinWordLength = 3
	// DefaultK is the number of distinct suggestion lengths returned by WordsWithPrefix.
	DefaultK = 3
)

// ErrInvalidArgument is returned for prefixes shorter than the minimum word length.
var ErrInvalidArgument = errors.New("invalid argument")

// PrefixMatches stores words in a trie and serves length limited prefix matches.
// Like the trie under it, it is not safe for concurrent use.
type PrefixMatches struct {
	trie          trie.Trie
	minWordLength int
	defaultK      int
	logger        *log.Logger
}

// Option configures a PrefixMatches.
type Option func(*PrefixMatches)

// WithTrie sets the backing trie. It must be empty or owned by the matcher from now on.
func WithTrie(t trie.Trie) Option {
	return func(m *PrefixMatches) {
		m.trie = t
	}
}

// WithMinWordLength raises the minimum word and prefix length.
// Values below MinWordLength are ignored.
func WithMinWordLength(n int) Option {
	return func(m *PrefixMatches) {
		if n >= MinWordLength {
			m.minWordLength = n
		}
	}
}

// WithDefaultK overrides DefaultK.
func WithDefaultK(k int) Option {
	return func(m *PrefixMatches) {
		m.defaultK = k
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *PrefixMatches) {
		m.logger = l
	}
}

// NewPrefixMatches creates a matcher over an empty RWayTrie unless WithTrie is given.
func NewPrefixMatches(opts ...Option) *PrefixMatches {
	m := &PrefixMatches{
		minWordLength: MinWordLength,
		defaultK:      DefaultK,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.trie == nil {
		m.trie = trie.NewRWayTrie()
	}
	if m.logger == nil {
		m.logger = logger.New("matcher")
	}
	return m
}

// Load splits every string on runs of whitespace and adds each token of at
// least the minimum length, weighted by its own length. Returns Size.
func (m *PrefixMatches) Load(strs ...string) int {
	added, skipped := 0, 0
	for _, s := range strs {
		for _, token := range strings.Fields(s) {
			if len(token) < m.minWordLength {
				skipped++
				continue
			}
			if m.trie.Add(trie.NewTuple(token, len(token))) {
				added++
			}
		}
	}
	m.logger.Debug("Loaded words", "added", added, "skipped", skipped, "size", m.trie.Size())
	return m.Size()
}

func (m *PrefixMatches) Contains(word string) bool {
	return m.trie.Contains(word)
}

func (m *PrefixMatches) Delete(word string) bool {
	return m.trie.Delete(word)
}

// WordsWithPrefix is WordsWithPrefixK with the default k.
func (m *PrefixMatches) WordsWithPrefix(prefix string) (trie.Iterator, error) {
	return m.WordsWithPrefixK(prefix, m.defaultK)
}

// WordsWithPrefixK returns the stored words starting with prefix, shortest
// first, covering at most k distinct lengths. A k below 1 yields nothing.
func (m *PrefixMatches) WordsWithPrefixK(prefix string, k int) (trie.Iterator, error) {
	if len(prefix) < m.minWordLength {
		return nil, fmt.Errorf("%w: prefix %q is shorter than %d characters", ErrInvalidArgument, prefix, m.minWordLength)
	}
	return NewLengthLimiter(m.trie.WordsWithPrefix(prefix), k), nil
}

func (m *PrefixMatches) Size() int {
	return m.trie.Size()
}

// MinWordLength returns the minimum word and prefix length in effect.
func (m *PrefixMatches) MinWordLength() int {
	return m.minWordLength
}

// DefaultK returns the k used by WordsWithPrefix.
func (m *PrefixMatches) DefaultK() int {
	return m.defaultK
}
