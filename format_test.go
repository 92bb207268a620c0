package dawg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRecordFormatFieldWidths(t *testing.T) {
	f, err := parseRecordFormat("<3H")
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 2}, f.widths)
	require.Equal(t, 6, f.size())
}

func TestParseRecordFormatMixedFields(t *testing.T) {
	f, err := parseRecordFormat(">BIQ")
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 8}, f.widths)
}

func TestParseRecordFormatRejectsUnknownCode(t *testing.T) {
	_, err := parseRecordFormat("<3Z")
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestParseRecordFormatRejectsEmpty(t *testing.T) {
	_, err := parseRecordFormat("")
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestRecordFormatPackUnpackRoundTrip(t *testing.T) {
	f, err := parseRecordFormat(">HH")
	require.NoError(t, err)

	packed, err := f.pack([]uint64{0x1234, 0xBEEF})
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x34, 0xBE, 0xEF}, packed)

	values, err := f.unpack(packed)
	require.NoError(t, err)
	require.Equal(t, []uint64{0x1234, 0xBEEF}, values)
}

func TestRecordFormatPackRejectsWrongArity(t *testing.T) {
	f, err := parseRecordFormat("<HH")
	require.NoError(t, err)
	_, err = f.pack([]uint64{1})
	require.ErrorIs(t, err, ErrBadFormat)
}
