package trie

import (
	"github.com/bastiangx/prefixserve/internal/utils"
	"github.com/charmbracelet/log"
)

const (
	// R is the branching factor, one slot per letter.
	R = 26
	// FirstChar is the letter stored in slot 0.
	FirstChar = 'a'
)

type node struct {
	weight   int
	terminal bool
	next     [R]*node
}

func (n *node) isEmpty() bool {
	return !n.terminal
}

// isRedundant reports whether n holds no weight and has no children.
func (n *node) isRedundant() bool {
	if n.terminal {
		return false
	}
	for _, child := range n.next {
		if child != nil {
			return false
		}
	}
	return true
}

func toIndex(c byte) (int, bool) {
	if c < FirstChar || c >= FirstChar+R {
		return 0, false
	}
	return int(c - FirstChar), true
}

func toChar(i int) byte {
	return byte(FirstChar + i)
}

// RWayTrie is a 26-way trie over a-z.
// It is not safe for concurrent use, and mutating it invalidates
// iterators that are still in flight.
type RWayTrie struct {
	root *node
	size int
}

// NewRWayTrie creates an empty trie.
func NewRWayTrie() *RWayTrie {
	return &RWayTrie{root: &node{}}
}

// Add walks the path of t.Term, creating missing nodes. The first weight
// written for a key wins; re-adding it changes nothing.
func (t *RWayTrie) Add(tp Tuple) bool {
	if !InAlphabet(tp.Term) {
		log.Debugf("Skipping key outside alphabet: %q", tp.Term)
		return false
	}
	cur := t.root
	for i := 0; i < len(tp.Term); i++ {
		idx, _ := toIndex(tp.Term[i])
		if cur.next[idx] == nil {
			cur.next[idx] = &node{}
		}
		cur = cur.next[idx]
	}
	if !cur.isEmpty() {
		return false
	}
	cur.weight = tp.Weight
	cur.terminal = true
	t.size++
	return true
}

func (t *RWayTrie) Contains(word string) bool {
	n := t.get(word)
	return n != nil && !n.isEmpty()
}

func (t *RWayTrie) Weight(word string) (int, bool) {
	n := t.get(word)
	if n == nil || n.isEmpty() {
		return 0, false
	}
	return n.weight, true
}

// Delete clears the weight of word, then detaches now-redundant nodes
// from the bottom up.
func (t *RWayTrie) Delete(word string) bool {
	n := t.get(word)
	if n == nil || n.isEmpty() {
		return false
	}
	n.terminal = false
	n.weight = 0
	t.size--
	t.prune(word)
	return true
}

// prune detaches redundant nodes along word, finding each parent by
// replaying the shorter key from the root. The root is never detached.
func (t *RWayTrie) prune(word string) {
	for len(word) > 0 {
		if !t.get(word).isRedundant() {
			return
		}
		parent := t.get(word[:len(word)-1])
		idx, _ := toIndex(word[len(word)-1])
		parent.next[idx] = nil
		word = word[:len(word)-1]
	}
}

func (t *RWayTrie) Words() Iterator {
	return t.WordsWithPrefix("")
}

func (t *RWayTrie) WordsWithPrefix(prefix string) Iterator {
	it := &prefixIterator{trie: t, queue: utils.NewStringQueue()}
	if t.get(prefix) != nil {
		it.queue.Push(prefix)
		it.advance()
	}
	return it
}

func (t *RWayTrie) Size() int {
	return t.size
}

// get returns the node at the end of key's path, or nil.
func (t *RWayTrie) get(key string) *node {
	cur := t.root
	for i := 0; i < len(key); i++ {
		idx, ok := toIndex(key[i])
		if !ok || cur.next[idx] == nil {
			return nil
		}
		cur = cur.next[idx]
	}
	return cur
}

// prefixIterator walks a subtree breadth first. Each dequeued key has its
// children queued in slot order, so keys come out shortest first and
// alphabetical within a length.
type prefixIterator struct {
	trie  *RWayTrie
	queue *utils.StringQueue
	next  string
	ok    bool
}

func (it *prefixIterator) advance() {
	it.ok = false
	for !it.queue.IsEmpty() {
		key, _ := it.queue.Pop()
		n := it.trie.get(key)
		if n == nil {
			continue
		}
		for i, child := range n.next {
			if child != nil {
				it.queue.Push(key + string(toChar(i)))
			}
		}
		if !n.isEmpty() {
			it.next = key
			it.ok = true
			return
		}
	}
}

func (it *prefixIterator) HasNext() bool {
	return it.ok
}

func (it *prefixIterator) Next() (string, error) {
	if !it.ok {
		return "", ErrIterationExhausted
	}
	current := it.next
	it.advance()
	return current, nil
}
