package dawg

import "bytes"

// Codec selects the payload representation stored on accepting states.
type Codec int

const (
	// CodecNone accepts keys with no associated value (KeySet, CompletionSet,
	// and the synthetic-key scheme used by BytesMap/RecordMap).
	CodecNone Codec = iota
	// CodecInt31 stores an unsigned value in [0, 2^31-1] per accepting state
	// (IntMap).
	CodecInt31
)

// builder implements Daciuk et al.'s incremental minimization algorithm: it
// consumes keys in non-decreasing byte order and maintains a stack
// representing the path of the most recently inserted key. Equivalent
// suffixes are frozen into the equivalence register as soon as a later key
// diverges from them, so the node arena never holds more than one path's
// worth of not-yet-canonical nodes at a time.
type builder struct {
	codec   Codec
	arena   *arena
	reg     *register
	stack   []int32
	prev    []byte
	hasPrev bool
	built   bool
}

func newBuilder(codec Codec) *builder {
	a := newArena()
	return &builder{
		codec: codec,
		arena: a,
		reg:   newRegister(a, codec),
		stack: []int32{0},
	}
}

// insert adds key (with value, meaningful only for CodecInt31) to the
// automaton under construction. Keys must arrive in non-decreasing
// byte-lexicographic order; a key equal to the previous one is passed to
// handleDuplicate instead of being inserted again.
func (b *builder) insert(key []byte, value uint32) error {
	if b.built {
		return &BuildError{Kind: errBuilderClosed}
	}
	if bytes.IndexByte(key, 0x00) >= 0 {
		return newBuildErr(ErrInvalidKey, key, "key contains a 0x00 byte")
	}
	if len(key) == 0 {
		return b.insertEmpty(value)
	}
	if b.hasPrev {
		switch bytes.Compare(key, b.prev) {
		case 0:
			return b.handleDuplicate(key, value)
		case -1:
			return newBuildErr(ErrOrderError, key, "input_is_sorted asserted but keys are not increasing")
		}
	}
	p := commonPrefixLen(key, b.prev)
	b.freeze(p)
	b.extend(key[p:])
	tail := b.stack[len(b.stack)-1]
	n := b.arena.get(tail)
	n.terminal = true
	if b.codec == CodecInt31 {
		if value > maxIntValue {
			return newBuildErr(ErrValueRange, key, "value exceeds 2^31-1")
		}
		n.value = value
	}
	n.sigValid = false
	b.prev = append(b.prev[:0], key...)
	b.hasPrev = true
	return nil
}

func (b *builder) insertEmpty(value uint32) error {
	if b.hasPrev && len(b.prev) == 0 {
		return b.handleDuplicate(nil, value)
	}
	if b.hasPrev {
		return newBuildErr(ErrOrderError, nil, "empty key must be inserted first")
	}
	root := b.arena.get(0)
	root.terminal = true
	if b.codec == CodecInt31 {
		if value > maxIntValue {
			return newBuildErr(ErrValueRange, nil, "value exceeds 2^31-1")
		}
		root.value = value
	}
	root.sigValid = false
	b.prev = b.prev[:0]
	b.hasPrev = true
	return nil
}

func (b *builder) handleDuplicate(key []byte, value uint32) error {
	tail := b.stack[len(b.stack)-1]
	n := b.arena.get(tail)
	if b.codec == CodecInt31 {
		if value > maxIntValue {
			return newBuildErr(ErrValueRange, key, "value exceeds 2^31-1")
		}
		if n.value != value {
			return newBuildErr(ErrDuplicateValue, key, "conflicting values for the same key")
		}
	}
	return nil
}

// freeze pops stack entries beyond depth p, canonicalizing each popped node
// through the equivalence register and rewriting its parent's transition to
// the resulting canonical id.
func (b *builder) freeze(p int) {
	for len(b.stack)-1 > p {
		i := len(b.stack) - 1
		child := b.stack[i]
		parent := b.stack[i-1]
		label := b.prev[i-1]
		b.stack = b.stack[:i]
		canon := b.reg.canonicalize(child)
		b.rewireLastChild(parent, label, canon)
	}
}

// rewireLastChild replaces the most recently appended transition of parent
// (which must be the one labeled label, since it was just built) to point at
// canon instead of its provisional target.
func (b *builder) rewireLastChild(parent int32, label byte, canon int32) {
	n := b.arena.get(parent)
	last := len(n.transitions) - 1
	if last < 0 || n.transitions[last].label != label {
		panic("dawg: internal error: freeze stack desynchronized from transition list")
	}
	n.transitions[last].child = canon
	n.sigValid = false
}

func (b *builder) extend(suffix []byte) {
	parent := b.stack[len(b.stack)-1]
	for _, c := range suffix {
		child := b.arena.alloc()
		b.arena.addChild(parent, c, child)
		b.stack = append(b.stack, child)
		parent = child
	}
}

// finish freezes the remainder of the stack and returns the canonical root
// id together with the arena backing it. The builder must not be used again.
func (b *builder) finish() (int32, *arena) {
	b.freeze(0)
	root := b.reg.canonicalize(b.stack[0])
	b.built = true
	return root, b.arena
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
