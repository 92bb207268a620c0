package dawg

import (
	"encoding/binary"
	"io"
)

// File layout (all integers little-endian, matching the in-memory unit
// encoding so a loaded dictionary can in principle be used without
// byte-swapping on a little-endian host):
//
//	uint32 dictionaryCount (N)
//	N * uint32 dictionary units
//	uint32 guideCount (M) -- 0 if this automaton carries no guide
//	M * 2 bytes (child, sibling) -- present only if guideCount > 0
//
// M must equal N whenever a guide is present; Read rejects anything else as
// ErrInvalidFile rather than risk an out-of-bounds guide access later.
func writeAutomaton(w io.Writer, a *automaton) error {
	units := a.dict.units
	if err := writeUint32(w, uint32(len(units))); err != nil {
		return err
	}
	buf := make([]byte, 4*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint32(buf[i*4:], u)
	}
	if _, err := w.Write(buf); err != nil {
		return err
	}

	hasGuide := len(a.guide.child) > 0
	if !hasGuide {
		return writeUint32(w, 0)
	}
	if err := writeUint32(w, uint32(len(a.guide.child))); err != nil {
		return err
	}
	gbuf := make([]byte, 2*len(a.guide.child))
	for i := range a.guide.child {
		gbuf[i*2] = a.guide.child[i]
		gbuf[i*2+1] = a.guide.sibling[i]
	}
	_, err := w.Write(gbuf)
	return err
}

func readAutomaton(r io.Reader, codec Codec) (*automaton, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, newFileErr("truncated dictionary length")
	}
	if n == 0 {
		return nil, newFileErr("dictionary must have at least one unit")
	}
	buf := make([]byte, 4*int(n))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, newFileErr("truncated dictionary units")
	}
	units := make([]uint32, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}

	m, err := readUint32(r)
	if err != nil {
		return nil, newFileErr("truncated guide length")
	}
	a := &automaton{dict: dictionary{units: units}, codec: codec}
	if m == 0 {
		return a, nil
	}
	if m != n {
		return nil, newFileErr("guide length does not match dictionary length")
	}
	gbuf := make([]byte, 2*int(m))
	if _, err := io.ReadFull(r, gbuf); err != nil {
		return nil, newFileErr("truncated guide entries")
	}
	child := make([]byte, m)
	sibling := make([]byte, m)
	for i := range child {
		child[i] = gbuf[i*2]
		sibling[i] = gbuf[i*2+1]
	}
	a.guide = guide{child: child, sibling: sibling}
	return a, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteTo serializes s to w in the on-disk format described above.
func (s *KeySet) WriteTo(w io.Writer) error { return writeAutomaton(w, s.a) }

// ReadKeySet reads a KeySet previously written by WriteTo.
func ReadKeySet(r io.Reader) (*KeySet, error) {
	a, err := readAutomaton(r, CodecNone)
	if err != nil {
		return nil, err
	}
	return &KeySet{a: a}, nil
}

func (s *CompletionSet) WriteTo(w io.Writer) error { return writeAutomaton(w, s.a) }

func ReadCompletionSet(r io.Reader) (*CompletionSet, error) {
	a, err := readAutomaton(r, CodecNone)
	if err != nil {
		return nil, err
	}
	if len(a.guide.child) == 0 {
		return nil, newFileErr("completion set requires a guide segment")
	}
	return &CompletionSet{a: a}, nil
}

func (m *IntMap) WriteTo(w io.Writer) error { return writeAutomaton(w, m.a) }

func ReadIntMap(r io.Reader) (*IntMap, error) {
	a, err := readAutomaton(r, CodecInt31)
	if err != nil {
		return nil, err
	}
	return &IntMap{a: a}, nil
}

func (m *BytesMap) WriteTo(w io.Writer) error {
	if err := writeAutomaton(w, m.a); err != nil {
		return err
	}
	_, err := w.Write([]byte{m.sep})
	return err
}

func ReadBytesMap(r io.Reader) (*BytesMap, error) {
	a, err := readAutomaton(r, CodecNone)
	if err != nil {
		return nil, err
	}
	var sep [1]byte
	if _, err := io.ReadFull(r, sep[:]); err != nil {
		return nil, newFileErr("truncated separator byte")
	}
	return &BytesMap{a: a, sep: sep[0]}, nil
}

func (m *RecordMap) WriteTo(w io.Writer) error {
	if err := m.bm.WriteTo(w); err != nil {
		return err
	}
	spec := formatString(m.format)
	if err := writeUint32(w, uint32(len(spec))); err != nil {
		return err
	}
	_, err := w.Write([]byte(spec))
	return err
}

func ReadRecordMap(r io.Reader) (*RecordMap, error) {
	bm, err := ReadBytesMap(r)
	if err != nil {
		return nil, err
	}
	n, err := readUint32(r)
	if err != nil {
		return nil, newFileErr("truncated format string length")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, newFileErr("truncated format string")
	}
	f, err := parseRecordFormat(string(buf))
	if err != nil {
		return nil, newFileErr("corrupt record format string")
	}
	return &RecordMap{bm: bm, format: f}, nil
}

// formatString reconstructs a canonical "<widths..." spec string from a
// compiled format, good enough to round-trip through parseRecordFormat —
// it does not attempt to recover the caller's original repeat-count
// grouping, just the byte order and field widths, which are all pack/unpack
// care about.
func formatString(f *recordFormat) string {
	out := make([]byte, 0, len(f.widths)+1)
	if f.order == binary.BigEndian {
		out = append(out, '>')
	} else {
		out = append(out, '<')
	}
	for _, w := range f.widths {
		switch w {
		case 1:
			out = append(out, 'B')
		case 2:
			out = append(out, 'H')
		case 4:
			out = append(out, 'I')
		case 8:
			out = append(out, 'Q')
		}
	}
	return string(out)
}
