package dawg

// IntMap maps byte-string keys to unsigned integers in [0, 2^31-1]. The
// value is stored directly in the dictionary via the reserved 0x00 label
// rather than through the base64 payload trick BytesMap and RecordMap use,
// so IntMap pays no enumeration overhead for its values and never needs a
// completion guide unless the caller also wants Keys/IterKeys.
type IntMap struct {
	a *automaton
}

// IntMapEntry pairs a key with its integer value for construction.
type IntMapEntry struct {
	Key   []byte
	Value uint32
}

// NewIntMap builds an IntMap from entries, sorting by key first unless
// sorted is true. Values must fit in 31 bits; a repeated key must carry the
// same value every time it appears or ErrDuplicateValue is returned.
func NewIntMap(entries []IntMapEntry, sorted bool) (*IntMap, error) {
	raw := make([]rawEntry, len(entries))
	for i, e := range entries {
		raw[i] = rawEntry{key: e.Key, value: e.Value}
	}
	a, err := buildAutomaton(raw, buildOptions{codec: CodecInt31, sorted: sorted, withGuide: true})
	if err != nil {
		return nil, err
	}
	return &IntMap{a: a}, nil
}

// Contains reports whether key is present.
func (m *IntMap) Contains(key []byte) bool {
	if m == nil || m.a == nil {
		return false
	}
	return m.a.contains(key)
}

// Get returns the value stored for key, and whether key was present.
func (m *IntMap) Get(key []byte) (uint32, bool) {
	if m == nil || m.a == nil {
		return 0, false
	}
	return m.a.lookupValue(key)
}

func (m *IntMap) HasKeysWithPrefix(prefix []byte) bool {
	_, ok := m.a.prefixNode(prefix)
	return ok
}

func (m *IntMap) Prefixes(key []byte) [][]byte {
	return m.a.prefixesOf(key)
}

// IterPrefixes calls fn once per prefix of key present in the map, shortest
// first, stopping early if fn returns false.
func (m *IntMap) IterPrefixes(key []byte, fn func(prefix []byte) bool) {
	m.a.iterPrefixesOf(key, fn)
}

// Keys returns every key in the map, in lexicographic order.
func (m *IntMap) Keys() [][]byte {
	var out [][]byte
	m.IterKeys(func(k []byte) bool {
		out = append(out, append([]byte(nil), k...))
		return true
	})
	return out
}

func (m *IntMap) IterKeys(fn func(key []byte) bool) {
	c := m.a.newCompleter(nil)
	for {
		k, ok := c.next()
		if !ok {
			return
		}
		if !fn(k) {
			return
		}
	}
}

// IntMapItem pairs a returned key with its value.
type IntMapItem struct {
	Key   []byte
	Value uint32
}

// Items returns every (key, value) pair in the map, in key order.
func (m *IntMap) Items() []IntMapItem {
	var out []IntMapItem
	m.IterItems(func(k []byte, v uint32) bool {
		out = append(out, IntMapItem{Key: append([]byte(nil), k...), Value: v})
		return true
	})
	return out
}

func (m *IntMap) IterItems(fn func(key []byte, value uint32) bool) {
	root := m.a.root()
	m.IterKeys(func(k []byte) bool {
		idx, ok := m.a.dict.followBytes(root, k)
		if !ok || !m.a.dict.hasValue(idx) {
			return true
		}
		return fn(k, m.a.dict.value(idx))
	})
}

// SimilarKeys returns every key reachable from key by applying zero or more
// substitutions from table, in lexicographic order, deduplicated.
func (m *IntMap) SimilarKeys(key []byte, table *ReplaceTable) [][]byte {
	return m.a.similarKeys(key, table)
}

// SimilarItems returns every (key, value) pair whose key is reachable from
// key by applying zero or more substitutions from table.
func (m *IntMap) SimilarItems(key []byte, table *ReplaceTable) []IntMapItem {
	keys := m.a.similarKeys(key, table)
	out := make([]IntMapItem, 0, len(keys))
	root := m.a.root()
	for _, k := range keys {
		idx, ok := m.a.dict.followBytes(root, k)
		if !ok || !m.a.dict.hasValue(idx) {
			continue
		}
		out = append(out, IntMapItem{Key: k, Value: m.a.dict.value(idx)})
	}
	return out
}

// SimilarItemValues returns just the values from SimilarItems, in the same
// order.
func (m *IntMap) SimilarItemValues(key []byte, table *ReplaceTable) []uint32 {
	items := m.SimilarItems(key, table)
	out := make([]uint32, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}
