package dawg

// KeySet is a minimal, immutable set of byte-string keys with no attached
// payload. It supports membership and prefix-duality queries only — it is
// built without a completion guide, since neither needs one — making it the
// cheapest of the container types to encode and hold in memory.
type KeySet struct {
	a *automaton
}

// NewKeySet builds a KeySet from keys. If sorted is false, a copy of the key
// list is sorted before construction (keys itself is left in its order);
// duplicates are silently collapsed.
func NewKeySet(keys [][]byte, sorted bool) (*KeySet, error) {
	entries := make([]rawEntry, len(keys))
	for i, k := range keys {
		entries[i] = rawEntry{key: k}
	}
	a, err := buildAutomaton(entries, buildOptions{codec: CodecNone, sorted: sorted})
	if err != nil {
		return nil, err
	}
	return &KeySet{a: a}, nil
}

// Contains reports whether key was present at construction time.
func (s *KeySet) Contains(key []byte) bool {
	if s == nil || s.a == nil {
		return false
	}
	return s.a.contains(key)
}

// HasKeysWithPrefix reports whether any key in the set starts with prefix
// (the empty prefix always matches a non-empty set).
func (s *KeySet) HasKeysWithPrefix(prefix []byte) bool {
	_, ok := s.a.prefixNode(prefix)
	return ok
}

// Prefixes returns every prefix of key (including key itself, excluding the
// empty prefix unless it was itself inserted) that is present in the set,
// shortest first.
func (s *KeySet) Prefixes(key []byte) [][]byte {
	return s.a.prefixesOf(key)
}

// IterPrefixes calls fn once per prefix of key present in the set, shortest
// first, stopping early if fn returns false.
func (s *KeySet) IterPrefixes(key []byte, fn func(prefix []byte) bool) {
	s.a.iterPrefixesOf(key, fn)
}

// SimilarKeys returns every key reachable from key by applying zero or more
// substitutions from table, in lexicographic order, deduplicated.
func (s *KeySet) SimilarKeys(key []byte, table *ReplaceTable) [][]byte {
	return s.a.similarKeys(key, table)
}
