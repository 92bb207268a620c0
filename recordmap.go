package dawg

// RecordMap maps byte-string keys to fixed-width tuples of unsigned
// integers, described by a struct-style format string (see format.go). It
// is built on the same synthetic-key/base64 machinery as BytesMap — a
// RecordMap's payload is just a BytesMap payload that is always exactly
// format.size() bytes, packed and unpacked through recordFormat instead of
// handed to the caller raw.
type RecordMap struct {
	bm     *BytesMap
	format *recordFormat
}

// RecordMapEntry pairs a key with one record's worth of field values.
type RecordMapEntry struct {
	Key    []byte
	Values []uint64
}

// NewRecordMap compiles format and builds a RecordMap from entries, sorting
// by key first unless sorted is true. Every entry's Values must have
// exactly as many elements as format has fields.
func NewRecordMap(format string, entries []RecordMapEntry, sorted bool) (*RecordMap, error) {
	f, err := parseRecordFormat(format)
	if err != nil {
		return nil, err
	}
	bmEntries := make([]BytesMapEntry, len(entries))
	for i, e := range entries {
		packed, err := f.pack(e.Values)
		if err != nil {
			return nil, err
		}
		bmEntries[i] = BytesMapEntry{Key: e.Key, Payload: packed}
	}
	bm, err := NewBytesMap(bmEntries, sorted)
	if err != nil {
		return nil, err
	}
	return &RecordMap{bm: bm, format: f}, nil
}

// Get returns the field values stored for key, and whether key was present.
func (m *RecordMap) Get(key []byte) ([]uint64, bool) {
	if m == nil {
		return nil, false
	}
	payload, ok := m.bm.Get(key)
	if !ok {
		return nil, false
	}
	values, err := m.format.unpack(payload)
	if err != nil {
		return nil, false
	}
	return values, true
}

// GetAll returns every record stored under key.
func (m *RecordMap) GetAll(key []byte) [][]uint64 {
	if m == nil {
		return nil
	}
	payloads := m.bm.GetAll(key)
	out := make([][]uint64, 0, len(payloads))
	for _, p := range payloads {
		if values, err := m.format.unpack(p); err == nil {
			out = append(out, values)
		}
	}
	return out
}

func (m *RecordMap) Contains(key []byte) bool {
	if m == nil {
		return false
	}
	return m.bm.Contains(key)
}

// RecordMapItem pairs a raw key with one of its decoded records.
type RecordMapItem struct {
	Key    []byte
	Values []uint64
}

// Items returns every (key, record) pair in the map, in key order.
func (m *RecordMap) Items() []RecordMapItem {
	bmItems := m.bm.Items()
	out := make([]RecordMapItem, 0, len(bmItems))
	for _, it := range bmItems {
		values, err := m.format.unpack(it.Payload)
		if err != nil {
			continue
		}
		out = append(out, RecordMapItem{Key: it.Key, Values: values})
	}
	return out
}
