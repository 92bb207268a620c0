package dawg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeySetWriteReadRoundTrip(t *testing.T) {
	ks, err := NewKeySet(keys("alpha", "beta", "betamax", "gamma"), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ks.WriteTo(&buf))

	loaded, err := ReadKeySet(&buf)
	require.NoError(t, err)

	for _, k := range []string{"alpha", "beta", "betamax", "gamma"} {
		require.True(t, loaded.Contains([]byte(k)), k)
	}
	require.False(t, loaded.Contains([]byte("nope")))
}

func TestCompletionSetWriteReadRoundTrip(t *testing.T) {
	cs, err := NewCompletionSet(keys("bar", "f", "foo", "foobar"), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cs.WriteTo(&buf))

	loaded, err := ReadCompletionSet(&buf)
	require.NoError(t, err)
	require.Equal(t, []string{"bar", "f", "foo", "foobar"}, keyStrings(loaded.Keys()))
}

func TestIntMapWriteReadRoundTrip(t *testing.T) {
	m, err := NewIntMap([]IntMapEntry{
		{Key: []byte("foo"), Value: 1},
		{Key: []byte("bar"), Value: 5},
	}, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteTo(&buf))

	loaded, err := ReadIntMap(&buf)
	require.NoError(t, err)
	v, ok := loaded.Get([]byte("foo"))
	require.True(t, ok)
	require.Equal(t, uint32(1), v)
}

func TestBytesMapWriteReadRoundTrip(t *testing.T) {
	bm, err := NewBytesMap([]BytesMapEntry{
		{Key: []byte("k1"), Payload: []byte("payload one")},
		{Key: []byte("k2"), Payload: []byte("payload two")},
	}, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bm.WriteTo(&buf))

	loaded, err := ReadBytesMap(&buf)
	require.NoError(t, err)
	v, ok := loaded.Get([]byte("k1"))
	require.True(t, ok)
	require.Equal(t, []byte("payload one"), v)
}

// S7: loading a truncated/garbage file raises InvalidFile, and a subsequent
// Contains on the (nil) result is safe and returns false.
func TestKeySetScenarioS7TruncatedFile(t *testing.T) {
	_, err := ReadKeySet(bytes.NewReader([]byte("foo")))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidFile)

	var failed *KeySet
	require.False(t, failed.Contains([]byte("random-key")))
}

func TestReadCompletionSetRejectsMissingGuide(t *testing.T) {
	ks, err := NewKeySet(keys("a", "b"), false)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ks.WriteTo(&buf))

	// buf holds a valid KeySet stream, which carries a zero guide-count
	// trailer; reading it back as a CompletionSet must fail rather than
	// silently produce a guide-less completion set.
	_, err = ReadCompletionSet(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
}

func TestRecordMapWriteReadRoundTrip(t *testing.T) {
	rm, err := NewRecordMap("<HH", []RecordMapEntry{
		{Key: []byte("alpha"), Values: []uint64{1, 2}},
	}, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rm.WriteTo(&buf))

	loaded, err := ReadRecordMap(&buf)
	require.NoError(t, err)
	v, ok := loaded.Get([]byte("alpha"))
	require.True(t, ok)
	require.Equal(t, []uint64{1, 2}, v)
}
