package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFixture returns a trie holding o, on, one and oneapple.
func newFixture(t *testing.T) *RWayTrie {
	t.Helper()
	tr := NewRWayTrie()
	for _, tp := range []Tuple{
		NewTuple("o", 1),
		NewTuple("on", 2),
		NewTuple("one", 3),
		NewTuple("oneapple", 5),
	} {
		require.True(t, tr.Add(tp), "adding %q", tp.Term)
	}
	require.Equal(t, 4, tr.Size())
	return tr
}

// assertNoRedundant fails if any reachable non-root node is empty and childless.
func assertNoRedundant(t *testing.T, tr *RWayTrie) {
	t.Helper()
	var walk func(n *node, key string)
	walk = func(n *node, key string) {
		for i, child := range n.next {
			if child == nil {
				continue
			}
			childKey := key + string(toChar(i))
			assert.False(t, child.isRedundant(), "redundant node left at %q", childKey)
			walk(child, childKey)
		}
	}
	walk(tr.root, "")
}

func TestAdd(t *testing.T) {
	tr := newFixture(t)

	assert.True(t, tr.Add(NewTuple("apple", 5)))
	w, ok := tr.Weight("apple")
	require.True(t, ok)
	assert.Equal(t, 5, w)
	assert.Equal(t, 5, tr.Size())
}

func TestAddExistingKeepsFirstWeight(t *testing.T) {
	tr := newFixture(t)

	assert.False(t, tr.Add(NewTuple("one", 42)))
	assert.Equal(t, 4, tr.Size())
	assert.True(t, tr.Contains("one"))

	w, ok := tr.Weight("one")
	require.True(t, ok)
	assert.Equal(t, 3, w)
}

func TestAddRejectsKeysOutsideAlphabet(t *testing.T) {
	tests := []string{"", "One", "one1", "on e", "café", "{"}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			tr := NewRWayTrie()
			assert.False(t, tr.Add(NewTuple(key, len(key))))
			assert.Zero(t, tr.Size())
			assert.Nil(t, tr.root.next[0])
			assert.True(t, tr.root.isRedundant())
		})
	}
}

func TestContains(t *testing.T) {
	tr := newFixture(t)
	tests := []struct {
		word string
		want bool
	}{
		{"one", true},
		{"o", true},
		{"oneapple", true},
		{"two", false},
		{"onea", false},
		{"oneapples", false},
		{"", false},
		{"ONE", false},
	}
	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, tr.Contains(tc.word))
		})
	}
}

func TestDelete(t *testing.T) {
	t.Run("hit word", func(t *testing.T) {
		tr := newFixture(t)
		assert.True(t, tr.Delete("oneapple"))
		assert.False(t, tr.Contains("oneapple"))
		assert.Equal(t, 3, tr.Size())
	})

	t.Run("miss word", func(t *testing.T) {
		tr := newFixture(t)
		assert.False(t, tr.Delete("oneapp"))
		assert.False(t, tr.Delete("two"))
		assert.Equal(t, 4, tr.Size())
		assert.NotNil(t, tr.get("oneapp"))
	})

	t.Run("prunes redundant nodes", func(t *testing.T) {
		tr := newFixture(t)
		tr.Delete("oneapple")
		assert.Nil(t, tr.get("onea"))
		assert.NotNil(t, tr.get("one"))
		assertNoRedundant(t, tr)
	})

	t.Run("keeps nodes with children", func(t *testing.T) {
		tr := newFixture(t)
		tr.Delete("one")
		assert.NotNil(t, tr.get("one"))
		assert.NotNil(t, tr.get("oneapple"))
		assert.True(t, tr.Contains("oneapple"))
		assertNoRedundant(t, tr)
	})

	t.Run("empty string", func(t *testing.T) {
		tr := newFixture(t)
		assert.False(t, tr.Delete(""))
		assert.NotNil(t, tr.get("oneapple"))
		assert.Equal(t, 4, tr.Size())
	})

	t.Run("last key empties the trie", func(t *testing.T) {
		tr := newFixture(t)
		for _, w := range []string{"oneapple", "o", "one", "on"} {
			require.True(t, tr.Delete(w))
		}
		assert.Zero(t, tr.Size())
		assert.True(t, tr.root.isRedundant())
		assert.False(t, tr.Words().HasNext())
	})

	t.Run("stops at sibling branch", func(t *testing.T) {
		tr := NewRWayTrie()
		tr.Add(NewTuple("abcd", 4))
		tr.Add(NewTuple("abxy", 4))
		require.True(t, tr.Delete("abcd"))
		assert.Nil(t, tr.get("abc"))
		assert.NotNil(t, tr.get("ab"))
		assert.True(t, tr.Contains("abxy"))
		assertNoRedundant(t, tr)
	})
}

func TestWords(t *testing.T) {
	tr := newFixture(t)
	assert.Equal(t, []string{"o", "on", "one", "oneapple"}, Collect(tr.Words()))
}

func TestWordsWithPrefix(t *testing.T) {
	tr := newFixture(t)
	tests := []struct {
		prefix string
		want   []string
	}{
		{"one", []string{"one", "oneapple"}},
		{"oneapp", []string{"oneapple"}},
		{"two", []string{}},
		{"", []string{"o", "on", "one", "oneapple"}},
		{"One", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.prefix, func(t *testing.T) {
			assert.Equal(t, tc.want, Collect(tr.WordsWithPrefix(tc.prefix)))
		})
	}
}

func TestWordsWithPrefixBreadthFirstOrder(t *testing.T) {
	tr := NewRWayTrie()
	for _, w := range []string{"onedrive", "one", "oneapple", "onex", "oneb", "onea"} {
		tr.Add(NewTuple(w, len(w)))
	}
	want := []string{"one", "onea", "oneb", "onex", "oneapple", "onedrive"}
	assert.Equal(t, want, Collect(tr.WordsWithPrefix("one")))
}

func TestWordsWithPrefixMissingPrefix(t *testing.T) {
	tr := newFixture(t)
	it := tr.WordsWithPrefix("two")
	assert.False(t, it.HasNext())

	_, err := it.Next()
	assert.ErrorIs(t, err, ErrIterationExhausted)
}

func TestIteratorsAreIndependent(t *testing.T) {
	tr := newFixture(t)
	first := tr.WordsWithPrefix("on")
	second := tr.WordsWithPrefix("on")

	w, err := first.Next()
	require.NoError(t, err)
	assert.Equal(t, "on", w)

	assert.Equal(t, []string{"on", "one", "oneapple"}, Collect(second))
	assert.Equal(t, []string{"one", "oneapple"}, Collect(first))

	_, err = first.Next()
	assert.ErrorIs(t, err, ErrIterationExhausted)
}

func TestPrefixCompleteness(t *testing.T) {
	words := []string{"car", "card", "care", "cart", "carton", "cat", "dog", "do", "zebra"}
	tr := NewRWayTrie()
	for _, w := range words {
		tr.Add(NewTuple(w, len(w)))
	}

	for _, w := range words {
		for i := 0; i <= len(w); i++ {
			prefix := w[:i]
			got := Collect(tr.WordsWithPrefix(prefix))
			assert.Contains(t, got, w, "prefix %q", prefix)
			for _, g := range got {
				assert.True(t, len(g) >= len(prefix) && g[:len(prefix)] == prefix,
					"%q does not start with %q", g, prefix)
			}
		}
	}
	assert.ElementsMatch(t, Collect(tr.Words()), Collect(tr.WordsWithPrefix("")))
	assert.Len(t, Collect(tr.Words()), tr.Size())
}

func TestAll(t *testing.T) {
	tr := newFixture(t)
	var got []string
	for w := range All(tr.WordsWithPrefix("on")) {
		got = append(got, w)
		if w == "one" {
			break
		}
	}
	assert.Equal(t, []string{"on", "one"}, got)
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", BackendRWay} {
		tr, err := New(name)
		require.NoError(t, err)
		assert.IsType(t, &RWayTrie{}, tr)
	}

	tr, err := New(BackendPatricia)
	require.NoError(t, err)
	assert.IsType(t, &PatriciaTrie{}, tr)

	_, err = New("btree")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
