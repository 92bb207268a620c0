package dawg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func keys(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func keyStrings(bs [][]byte) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}

// S1: contains/keys/prefixes over {"f","bar","foo","foobar"}.
func TestCompletionSetScenarioS1(t *testing.T) {
	cs, err := NewCompletionSet(keys("f", "bar", "foo", "foobar"), false)
	require.NoError(t, err)

	require.True(t, cs.Contains([]byte("foo")))
	require.False(t, cs.Contains([]byte("fo")))

	require.Equal(t, []string{"bar", "f", "foo", "foobar"}, keyStrings(cs.Keys()))
	require.Equal(t, []string{"foo", "foobar"}, keyStrings(cs.CompleteKeys([]byte("foo"))))
	require.Equal(t, []string{"f", "foo", "foobar"}, keyStrings(cs.Prefixes([]byte("foobarz"))))
}

func TestKeySetContainsAndPrefixDuality(t *testing.T) {
	ks, err := NewKeySet(keys("a", "ab", "abc", "b"), false)
	require.NoError(t, err)

	require.True(t, ks.Contains([]byte("ab")))
	require.False(t, ks.Contains([]byte("abcd")))
	require.Equal(t, []string{"a", "ab", "abc"}, keyStrings(ks.Prefixes([]byte("abcxyz"))))
	require.True(t, ks.HasKeysWithPrefix([]byte("ab")))
	require.False(t, ks.HasKeysWithPrefix([]byte("c")))
}

// S4: a key containing 0x00 is rejected.
func TestKeySetRejectsNullByte(t *testing.T) {
	_, err := NewKeySet(keys("foo\x00bar", "bar"), false)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestCompletionSetUnsortedInput(t *testing.T) {
	cs, err := NewCompletionSet(keys("zebra", "apple", "mango"), false)
	require.NoError(t, err)
	require.Equal(t, []string{"apple", "mango", "zebra"}, keyStrings(cs.Keys()))
}

func TestCompletionSetDuplicatesCollapse(t *testing.T) {
	cs, err := NewCompletionSet(keys("dup", "dup", "other"), false)
	require.NoError(t, err)
	require.Equal(t, []string{"dup", "other"}, keyStrings(cs.Keys()))
}

func TestCompletionSetEmptyKey(t *testing.T) {
	cs, err := NewCompletionSet(keys("", "a"), false)
	require.NoError(t, err)
	require.True(t, cs.Contains(nil))
	require.Equal(t, []string{"", "a"}, keyStrings(cs.Keys()))
}

// Safety: malformed queries never panic, even on an automaton with a
// sparse key set.
func TestContainsNeverPanicsOnArbitraryInput(t *testing.T) {
	cs, err := NewCompletionSet(keys("abc", "abd"), false)
	require.NoError(t, err)

	inputs := [][]byte{
		nil,
		{},
		{0x00},
		{0xFF, 0xFE, 0xFD},
		[]byte("abcdefghijklmnopqrstuvwxyz0123456789"),
		[]byte("ab"),
	}
	for _, in := range inputs {
		require.NotPanics(t, func() { cs.Contains(in) })
	}
}

func TestReadOnNilOrFailedKeySetIsSafe(t *testing.T) {
	var ks *KeySet
	require.False(t, ks.Contains([]byte("anything")))
}
