package dawg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared suffixes: a key set engineered to share a common suffix ("ing")
// across unrelated prefixes must still produce correct membership and
// enumeration. This checks lookups only; it does not measure whether the
// shared suffix was merged into one set of states.
func TestSharedSuffixSharedAcrossPrefixes(t *testing.T) {
	words := []string{"running", "jumping", "ping", "singing", "ring"}
	cs, err := NewCompletionSet(keys(words...), false)
	require.NoError(t, err)

	for _, w := range words {
		require.True(t, cs.Contains([]byte(w)), w)
	}
	require.False(t, cs.Contains([]byte("run")))

	want := append([]string(nil), words...)
	got := keyStrings(cs.Keys())
	require.ElementsMatch(t, want, got)
}

// Large-ish random-looking but deterministic key set, exercising the
// encoder's free-list search and clone fallback across many shared
// sub-structures.
func TestLargerKeySetRoundTrip(t *testing.T) {
	var ks [][]byte
	words := []string{
		"apple", "application", "apply", "banana", "band", "bandana",
		"can", "candy", "candle", "dog", "dodge", "door", "dormant",
		"elephant", "element", "elevator", "fish", "fit", "fix", "fixture",
	}
	for _, w := range words {
		ks = append(ks, []byte(w))
	}
	cs, err := NewCompletionSet(ks, false)
	require.NoError(t, err)

	for _, w := range words {
		require.True(t, cs.Contains([]byte(w)), w)
	}
	require.ElementsMatch(t, words, keyStrings(cs.Keys()))

	require.Equal(t,
		[]string{"apple", "application", "apply"},
		keyStrings(cs.CompleteKeys([]byte("app"))))
}

func TestIntMapSharedValuesMergeStates(t *testing.T) {
	m, err := NewIntMap([]IntMapEntry{
		{Key: []byte("cat"), Value: 1},
		{Key: []byte("bat"), Value: 1},
		{Key: []byte("hat"), Value: 2},
	}, false)
	require.NoError(t, err)

	v, ok := m.Get([]byte("cat"))
	require.True(t, ok)
	require.Equal(t, uint32(1), v)

	v, ok = m.Get([]byte("bat"))
	require.True(t, ok)
	require.Equal(t, uint32(1), v)

	v, ok = m.Get([]byte("hat"))
	require.True(t, ok)
	require.Equal(t, uint32(2), v)
}

func TestHasKeysWithPrefixOnEmptySet(t *testing.T) {
	cs, err := NewCompletionSet(nil, false)
	require.NoError(t, err)
	require.False(t, cs.HasKeysWithPrefix([]byte("anything")))
	require.False(t, cs.Contains([]byte("x")))
	require.Empty(t, cs.Keys())
}
