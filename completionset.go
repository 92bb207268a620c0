package dawg

// CompletionSet is an immutable set of byte-string keys supporting the same
// membership and prefix-duality queries as KeySet, plus enumeration: every
// key, or every key sharing a given prefix, in lexicographic order. Because
// enumeration needs a completion guide, a CompletionSet costs two extra bytes
// (child and sibling labels) per dictionary unit over an equivalent KeySet.
type CompletionSet struct {
	a *automaton
}

// NewCompletionSet builds a CompletionSet from keys, sorting them first
// unless sorted is true.
func NewCompletionSet(keys [][]byte, sorted bool) (*CompletionSet, error) {
	entries := make([]rawEntry, len(keys))
	for i, k := range keys {
		entries[i] = rawEntry{key: k}
	}
	a, err := buildAutomaton(entries, buildOptions{codec: CodecNone, sorted: sorted, withGuide: true})
	if err != nil {
		return nil, err
	}
	return &CompletionSet{a: a}, nil
}

func (s *CompletionSet) Contains(key []byte) bool {
	if s == nil || s.a == nil {
		return false
	}
	return s.a.contains(key)
}

func (s *CompletionSet) HasKeysWithPrefix(prefix []byte) bool {
	_, ok := s.a.prefixNode(prefix)
	return ok
}

func (s *CompletionSet) Prefixes(key []byte) [][]byte {
	return s.a.prefixesOf(key)
}

// Keys returns every key in the set, in lexicographic order.
func (s *CompletionSet) Keys() [][]byte {
	var out [][]byte
	c := s.a.newCompleter(nil)
	for {
		k, ok := c.next()
		if !ok {
			break
		}
		out = append(out, append([]byte(nil), k...))
	}
	return out
}

// IterKeys calls fn once per key in lexicographic order, stopping early if
// fn returns false. The slice passed to fn is reused between calls and must
// not be retained past the call that produced it.
func (s *CompletionSet) IterKeys(fn func(key []byte) bool) {
	c := s.a.newCompleter(nil)
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

// CompleteKeys returns every key sharing prefix, in lexicographic order,
// including prefix itself if it is a key.
func (s *CompletionSet) CompleteKeys(prefix []byte) [][]byte {
	var out [][]byte
	c := s.a.newCompleter(prefix)
	for {
		k, ok := c.next()
		if !ok {
			break
		}
		out = append(out, append([]byte(nil), k...))
	}
	return out
}

// IterCompleteKeys calls fn once per key sharing prefix, in lexicographic
// order, stopping early if fn returns false.
func (s *CompletionSet) IterCompleteKeys(prefix []byte, fn func(key []byte) bool) {
	c := s.a.newCompleter(prefix)
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

// IterPrefixes calls fn once per prefix of key present in the set, shortest
// first, stopping early if fn returns false.
func (s *CompletionSet) IterPrefixes(key []byte, fn func(prefix []byte) bool) {
	s.a.iterPrefixesOf(key, fn)
}

// SimilarKeys returns every key reachable from key by applying zero or more
// substitutions from table, in lexicographic order, deduplicated.
func (s *CompletionSet) SimilarKeys(key []byte, table *ReplaceTable) [][]byte {
	return s.a.similarKeys(key, table)
}
