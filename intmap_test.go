package dawg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S2: IntMap{"foo":1,"bar":5,"foobar":3}, get("foo")=1, get("fo") absent,
// values out of range raise ValueRange.
func TestIntMapScenarioS2(t *testing.T) {
	m, err := NewIntMap([]IntMapEntry{
		{Key: []byte("foo"), Value: 1},
		{Key: []byte("bar"), Value: 5},
		{Key: []byte("foobar"), Value: 3},
	}, false)
	require.NoError(t, err)

	v, ok := m.Get([]byte("foo"))
	require.True(t, ok)
	require.Equal(t, uint32(1), v)

	_, ok = m.Get([]byte("fo"))
	require.False(t, ok)

	_, err = NewIntMap([]IntMapEntry{{Key: []byte("x"), Value: 0xFFFFFFFF}}, false)
	require.ErrorIs(t, err, ErrValueRange)
}

func TestIntMapBoundaryValues(t *testing.T) {
	m, err := NewIntMap([]IntMapEntry{
		{Key: []byte("zero"), Value: 0},
		{Key: []byte("mid"), Value: 0xFFFF},
		{Key: []byte("max"), Value: 0x7FFFFFFF},
	}, false)
	require.NoError(t, err)

	for _, tc := range []struct {
		key string
		val uint32
	}{
		{"zero", 0},
		{"mid", 0xFFFF},
		{"max", 0x7FFFFFFF},
	} {
		v, ok := m.Get([]byte(tc.key))
		require.True(t, ok, tc.key)
		require.Equal(t, tc.val, v, tc.key)
	}
}

func TestIntMapDuplicateKeySameValueOK(t *testing.T) {
	m, err := NewIntMap([]IntMapEntry{
		{Key: []byte("a"), Value: 7},
		{Key: []byte("a"), Value: 7},
	}, false)
	require.NoError(t, err)
	v, ok := m.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, uint32(7), v)
}

func TestIntMapDuplicateKeyConflictingValueErrors(t *testing.T) {
	_, err := NewIntMap([]IntMapEntry{
		{Key: []byte("a"), Value: 7},
		{Key: []byte("a"), Value: 8},
	}, false)
	require.ErrorIs(t, err, ErrDuplicateValue)
}

func TestIntMapItemsMatchesKeysAndValues(t *testing.T) {
	entries := []IntMapEntry{
		{Key: []byte("alpha"), Value: 10},
		{Key: []byte("beta"), Value: 20},
		{Key: []byte("gamma"), Value: 30},
	}
	m, err := NewIntMap(entries, false)
	require.NoError(t, err)

	items := m.Items()
	require.Len(t, items, 3)
	got := map[string]uint32{}
	for _, it := range items {
		got[string(it.Key)] = it.Value
	}
	require.Equal(t, map[string]uint32{"alpha": 10, "beta": 20, "gamma": 30}, got)
}

func TestIntMapOrderAssertedButUnsorted(t *testing.T) {
	_, err := NewIntMap([]IntMapEntry{
		{Key: []byte("zebra"), Value: 1},
		{Key: []byte("apple"), Value: 2},
	}, true)
	require.ErrorIs(t, err, ErrOrderError)
}
