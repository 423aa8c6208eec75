package trie

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// PatriciaTrie implements Trie on a compressed patricia trie.
// It accepts the same key alphabet as RWayTrie and enumerates in the same
// order, but materializes a prefix's matches before the first is returned.
type PatriciaTrie struct {
	trie *patricia.Trie
	size int
}

// NewPatriciaTrie creates an empty patricia-backed trie.
func NewPatriciaTrie() *PatriciaTrie {
	return &PatriciaTrie{trie: patricia.NewTrie()}
}

func (t *PatriciaTrie) Add(tp Tuple) bool {
	if !InAlphabet(tp.Term) {
		log.Debugf("Skipping key outside alphabet: %q", tp.Term)
		return false
	}
	// Insert never replaces an existing item.
	if !t.trie.Insert(patricia.Prefix(tp.Term), tp.Weight) {
		return false
	}
	t.size++
	return true
}

func (t *PatriciaTrie) Contains(word string) bool {
	_, ok := t.Weight(word)
	return ok
}

func (t *PatriciaTrie) Weight(word string) (int, bool) {
	if !InAlphabet(word) {
		return 0, false
	}
	item := t.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	weight, ok := item.(int)
	if !ok {
		log.Errorf("Unknown item type: %T for word %s", item, word)
		return 0, false
	}
	return weight, true
}

// Delete removes word only when it is stored exactly. The underlying Delete
// matches by subtree, so on a compressed node it would clear a longer key.
func (t *PatriciaTrie) Delete(word string) bool {
	if !InAlphabet(word) {
		return false
	}
	if t.trie.Get(patricia.Prefix(word)) == nil {
		return false
	}
	if !t.trie.Delete(patricia.Prefix(word)) {
		return false
	}
	t.size--
	return true
}

func (t *PatriciaTrie) Words() Iterator {
	return t.WordsWithPrefix("")
}

// WordsWithPrefix collects the subtree and orders it by length, then
// alphabetically, which is the order a breadth-first walk produces.
func (t *PatriciaTrie) WordsWithPrefix(prefix string) Iterator {
	var words []string
	err := t.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		words = append(words, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return FromSlice(nil)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) < len(words[j])
		}
		return words[i] < words[j]
	})
	return FromSlice(words)
}

func (t *PatriciaTrie) Size() int {
	return t.size
}
