package dawg

// guide is the read-side counterpart to the child/sibling arrays encoder.go
// produces: for a dictionary index idx, child(idx) is the smallest label
// among idx's outgoing transitions and sibling(childIdx) is the next label
// sharing idx's parent as its own parent, or 0 ("none") if idx is the last
// child. 0x00 never appears as a real key byte (ErrInvalidKey forbids it),
// so it is a safe "no more labels" sentinel even though the int codec's
// value-leaf arc is itself addressed through label 0x00 — that arc is
// excluded when the guide is built, since it isn't a followable key byte.
//
// Paired with the dictionary's BASE/CHECK transitions, child/sibling are
// enough to enumerate every completion under a state without recursing
// through the build-time arena, which is long gone by the time a guide is
// read.
type guide struct {
	child   []byte
	sibling []byte
}

func (g *guide) has(idx int32) bool {
	return idx >= 0 && idx < int32(len(g.child))
}

func (g *guide) childLabel(idx int32) (byte, bool) {
	if !g.has(idx) {
		return 0, false
	}
	if g.child[idx] == 0 {
		return 0, false
	}
	return g.child[idx], true
}

func (g *guide) siblingLabel(idx int32) (byte, bool) {
	if !g.has(idx) {
		return 0, false
	}
	if g.sibling[idx] == 0 {
		return 0, false
	}
	return g.sibling[idx], true
}

// frame is one level of the explicit DFS stack: parent is the dictionary
// index whose children are being enumerated, cur is the last child entered
// (-1 if none yet, meaning "ask the guide for the first child").
type frame struct {
	parent int32
	cur    int32
}

// completer performs non-recursive, in-order enumeration of every key
// reachable under a starting index, one result per call to next. It mirrors
// the classic recursive guide-walk (check hasValue on entry, then loop over
// child/sibling) but keeps its own explicit stack so a caller can pull one
// completion at a time instead of collecting them all up front.
type completer struct {
	dict     *dictionary
	gd       *guide
	bytes    []byte
	stack    []frame
	checkTop bool
	done     bool
}

func newCompleter(d *dictionary, g *guide, root int32, prefix []byte) *completer {
	return &completer{
		dict:     d,
		gd:       g,
		bytes:    append([]byte(nil), prefix...),
		stack:    []frame{{parent: root, cur: -1}},
		checkTop: true,
	}
}

// next advances to the next key in lexicographic order and reports whether
// one was found. The returned slice is valid only until the next call.
func (c *completer) next() ([]byte, bool) {
	if c.done {
		return nil, false
	}
	for {
		if c.checkTop {
			c.checkTop = false
			top := c.stack[len(c.stack)-1].parent
			if c.dict.hasValue(top) {
				return c.bytes, true
			}
		}

		top := &c.stack[len(c.stack)-1]
		var label byte
		var ok bool
		if top.cur == -1 {
			label, ok = c.gd.childLabel(top.parent)
		} else {
			label, ok = c.gd.siblingLabel(top.cur)
		}
		if !ok {
			if !c.popFrame() {
				c.done = true
				return nil, false
			}
			continue
		}

		child, ok := c.dict.followByte(top.parent, label)
		if !ok {
			if !c.popFrame() {
				c.done = true
				return nil, false
			}
			continue
		}

		top.cur = child
		c.bytes = append(c.bytes, label)
		c.stack = append(c.stack, frame{parent: child, cur: -1})
		c.checkTop = true
	}
}

// popFrame discards the innermost frame (and its corresponding path byte,
// if any — the root frame contributes none) and reports whether any frame
// remains to resume from.
func (c *completer) popFrame() bool {
	if len(c.stack) > 1 {
		c.bytes = c.bytes[:len(c.bytes)-1]
	}
	c.stack = c.stack[:len(c.stack)-1]
	return len(c.stack) > 0
}
