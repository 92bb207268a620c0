package dawg

import "sort"

// automaton bundles the three pieces every public container is built from:
// the flat transition table, the completion guide, and the payload codec
// that table was encoded with.
type automaton struct {
	dict  dictionary
	guide guide
	codec Codec
}

// buildOptions controls how raw input is turned into an automaton.
type buildOptions struct {
	codec    Codec
	sorted   bool // caller asserts keys are already in non-decreasing order
	withGuide bool
}

// rawEntry is one key/value pair prior to sorting, kept paired so sorting
// never separates a key from its value.
type rawEntry struct {
	key   []byte
	value uint32
}

// buildAutomaton sorts (unless the caller asserts the input already is) and
// feeds entries through builder and encoder, producing a finished automaton.
// Duplicate keys are tolerated per builder's own rules (silently merged for
// CodecNone, value-checked for CodecInt31).
func buildAutomaton(entries []rawEntry, opts buildOptions) (*automaton, error) {
	if !opts.sorted {
		sort.Slice(entries, func(i, j int) bool {
			return compareKeys(entries[i].key, entries[j].key) < 0
		})
	}

	b := newBuilder(opts.codec)
	for _, e := range entries {
		if err := b.insert(e.key, e.value); err != nil {
			return nil, err
		}
	}
	root, arena := b.finish()

	enc := newEncoder(opts.codec)
	units, gc, gs, err := enc.encode(root, arena, opts.withGuide)
	if err != nil {
		return nil, err
	}

	a := &automaton{dict: dictionary{units: units}, codec: opts.codec}
	if opts.withGuide {
		a.guide = guide{child: gc, sibling: gs}
	}
	return a, nil
}

func compareKeys(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func (a *automaton) root() int32 { return 0 }

// contains reports whether key is an accepting path in the automaton.
func (a *automaton) contains(key []byte) bool {
	idx, ok := a.dict.followBytes(a.root(), key)
	if !ok {
		return false
	}
	return a.dict.hasValue(idx)
}

// lookupValue reports the int-codec value stored at key, if key is present.
func (a *automaton) lookupValue(key []byte) (uint32, bool) {
	idx, ok := a.dict.followBytes(a.root(), key)
	if !ok || !a.dict.hasValue(idx) {
		return 0, false
	}
	return a.dict.value(idx), true
}

// prefixNode walks prefix and reports the state reached, if any — used both
// to test "has keys with this prefix" and as the entry point for completion.
func (a *automaton) prefixNode(prefix []byte) (int32, bool) {
	return a.dict.followBytes(a.root(), prefix)
}

// prefixesOf walks key byte by byte, collecting every proper or full prefix
// of key that is itself an accepting key in the automaton (dual of
// completion: completion finds extensions, this finds the ancestors).
func (a *automaton) prefixesOf(key []byte) [][]byte {
	var out [][]byte
	idx := a.root()
	if a.dict.hasValue(idx) {
		out = append(out, nil)
	}
	for i, c := range key {
		next, ok := a.dict.followByte(idx, c)
		if !ok {
			break
		}
		idx = next
		if a.dict.hasValue(idx) {
			out = append(out, append([]byte(nil), key[:i+1]...))
		}
	}
	return out
}

// iterPrefixesOf is the callback form of prefixesOf, stopping early if fn
// returns false.
func (a *automaton) iterPrefixesOf(key []byte, fn func(prefix []byte) bool) {
	idx := a.root()
	if a.dict.hasValue(idx) {
		if !fn(nil) {
			return
		}
	}
	for i, c := range key {
		next, ok := a.dict.followByte(idx, c)
		if !ok {
			return
		}
		idx = next
		if a.dict.hasValue(idx) {
			if !fn(key[:i+1]) {
				return
			}
		}
	}
}

func (a *automaton) newCompleter(prefix []byte) *completer {
	root, ok := a.prefixNode(prefix)
	if !ok {
		c := newCompleter(&a.dict, &a.guide, -1, prefix)
		c.done = true
		return c
	}
	return newCompleter(&a.dict, &a.guide, root, prefix)
}
