package dawg

import "github.com/bits-and-blooms/bitset"

// encoder walks the minimal node arena and lays it out as a flat,
// BASE/CHECK double-array dictionary plus a parallel completion guide.
//
// Placement policy: states are discovered breadth-first from the root, and
// a state's children are placed the first time that state is processed.
// A unit's check byte records only the label used to arrive there, so two
// states sharing a BASE would accept each other's transitions. Every state
// therefore also claims the unit at base^0 (its value leaf under the int
// codec, otherwise left empty), which gives each BASE exactly one owner.
// When a transition targets a node that some earlier state already placed
// under the same label, reusing that unit would force the current state
// onto the earlier state's BASE; since that BASE is already owned, the
// encoder instead physically clones the child's subtree for this occurrence
// — trading flat-array compactness for an encoder that always terminates
// with a correct automaton. See DESIGN.md.
//
// The doubly-linked free list of unused units is threaded through sidecar
// slices (freeNext/freePrev) rather than packed into the spare bits of
// unused dictionary words — §4.2 describes the packed-in-place version used
// by space-constrained C implementations; Go has no reason to economize
// those bits, so this keeps the same O(1) claim/release behavior with
// plainer code. A bits-and-blooms/bitset.BitSet tracks claimed units so the
// placement search can test "is this exact slot free" in O(1) instead of
// walking the free list, which is what actually makes the leaf-dense-packing
// pass in classic double-array builders affordable.
type encoder struct {
	codec    Codec
	units    []uint32
	claimed  *bitset.BitSet
	freeNext []int32
	freePrev []int32
	head     int32
	hint     int32
	placed   map[int32]int32

	guideChild   []byte
	guideSibling []byte
}

type arcSpec struct {
	label       byte
	isValue     bool
	value       uint32
	fixed       int32 // >=0 if childNodeID already has a unit index
	childNodeID int32
}

func newEncoder(codec Codec) *encoder {
	e := &encoder{
		codec:   codec,
		claimed: bitset.New(256),
		head:    -1,
		hint:    -1,
		placed:  make(map[int32]int32),
	}
	e.growTo(0)
	e.claim(0)
	return e
}

// encode produces the dictionary units (and, when withGuide is true, the
// completion guide) for the minimal automaton rooted at rootID.
func (e *encoder) encode(rootID int32, a *arena, withGuide bool) ([]uint32, []byte, []byte, error) {
	if withGuide {
		e.growGuideTo(0)
	}
	if a.get(rootID).terminal {
		e.units[0] |= hasLeafBit
	}
	e.placed[rootID] = 0

	type pending struct{ nodeID, idx int32 }
	queue := []pending{{rootID, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		node := a.get(cur.nodeID)
		arcs := e.collectArcs(node)
		if len(arcs) == 0 {
			continue
		}

		resolved, base, err := e.place(cur.idx, arcs, a)
		if err != nil {
			return nil, nil, nil, err
		}
		e.setBase(cur.idx, base)
		if withGuide {
			e.writeGuide(cur.idx, base, resolved)
		}

		for _, ar := range resolved {
			idx := base ^ int32(ar.label)
			if ar.isValue {
				e.growTo(idx)
				e.claim(idx)
				e.units[idx] = ar.value & unitValueMask
				continue
			}
			if ar.fixed >= 0 {
				continue // already fully placed (shared, or just cloned)
			}
			e.growTo(idx)
			e.claim(idx)
			var u uint32 = uint32(ar.label)
			if a.get(ar.childNodeID).terminal {
				u |= hasLeafBit
			}
			e.units[idx] = u
			e.placed[ar.childNodeID] = idx
			queue = append(queue, pending{ar.childNodeID, idx})
		}
	}

	if withGuide {
		e.growGuideTo(int32(len(e.units)) - 1)
		return e.units, e.guideChild, e.guideSibling, nil
	}
	return e.units, nil, nil, nil
}

// collectArcs builds the arc list for node: one entry per outgoing
// transition (sorted ascending by label, as construction guarantees),
// plus a synthetic value arc on the reserved label 0 when the int codec
// stores a payload here.
func (e *encoder) collectArcs(n *node) []arcSpec {
	arcs := make([]arcSpec, 0, len(n.transitions)+1)
	for _, t := range n.transitions {
		if fixedIdx, ok := e.placed[t.child]; ok && unitCheck(e.units[fixedIdx]) == t.label {
			arcs = append(arcs, arcSpec{label: t.label, fixed: fixedIdx, childNodeID: t.child})
		} else {
			arcs = append(arcs, arcSpec{label: t.label, fixed: -1, childNodeID: t.child})
		}
	}
	if e.codec == CodecInt31 && n.terminal {
		arcs = append(arcs, arcSpec{label: 0, fixed: -1, isValue: true, value: n.value})
	}
	return arcs
}

// place chooses a BASE for selfIdx satisfying every arc: fixed arcs pin an
// exact base, fresh arcs need any mutually-free slot. It returns the arc
// list that the caller should use to finish writing (identical to arcs
// unless a conflict forced a clone, in which case the cloned arcs are
// already fully written and marked fixed).
func (e *encoder) place(selfIdx int32, arcs []arcSpec, a *arena) ([]arcSpec, int32, error) {
	base, haveFixed, conflict := e.checkFixed(arcs)
	if haveFixed && !conflict {
		if e.baseSatisfiesFresh(base, arcs) {
			return arcs, base, nil
		}
		conflict = true
	}
	if !conflict {
		return arcs, e.searchFreeBase(arcs), nil
	}

	resolved := append([]arcSpec(nil), arcs...)
	for i := range resolved {
		resolved[i].fixed = -1
	}
	newBase := e.searchFreeBase(resolved)
	e.claim(newBase)
	for _, ar := range resolved {
		e.claim(newBase ^ int32(ar.label))
	}
	for i := range resolved {
		if resolved[i].isValue {
			continue
		}
		idx := newBase ^ int32(resolved[i].label)
		if arcs[i].fixed >= 0 {
			e.cloneSubtree(idx, resolved[i].label, resolved[i].childNodeID, a)
			resolved[i].fixed = idx
		}
	}
	return resolved, newBase, nil
}

func (e *encoder) checkFixed(arcs []arcSpec) (base int32, have bool, conflict bool) {
	base = -1
	for _, ar := range arcs {
		if ar.fixed < 0 {
			continue
		}
		b := ar.fixed ^ int32(ar.label)
		if !have {
			base, have = b, true
		} else if b != base {
			conflict = true
		}
	}
	return
}

func (e *encoder) baseSatisfiesFresh(base int32, arcs []arcSpec) bool {
	if base < 0 || !e.isFree(base) {
		return false
	}
	for _, ar := range arcs {
		if ar.fixed >= 0 {
			continue
		}
		idx := base ^ int32(ar.label)
		if idx < 0 || !e.isFree(idx) {
			return false
		}
	}
	return true
}

// searchFreeBase finds a base satisfying every arc in arcs, none of which
// may be fixed. It scans the free list anchored on the first arc's label —
// the standard double-array placement trick — starting from a rolling hint
// so repeated calls tend to reuse recently freed regions instead of
// rescanning from the head every time.
func (e *encoder) searchFreeBase(arcs []arcSpec) int32 {
	first := int32(arcs[0].label)
	start := e.head
	if e.hint >= 0 && e.isFreeIndex(e.hint) {
		start = e.hint
	}
	for idx := start; idx != -1; idx = e.freeNext[idx] {
		base := idx ^ first
		if base < 0 {
			continue
		}
		if e.allFree(base, arcs) {
			e.hint = idx
			return base
		}
	}
	// No candidate in the current free region: grow the array and retry in
	// the freshly-freed space, which always succeeds.
	e.growTo(int32(len(e.units)) + 256)
	return e.searchFreeBase(arcs)
}

func (e *encoder) allFree(base int32, arcs []arcSpec) bool {
	if !e.isFree(base) {
		return false
	}
	for _, ar := range arcs {
		idx := base ^ int32(ar.label)
		if idx < 0 || !e.isFree(idx) {
			return false
		}
	}
	return true
}

// cloneSubtree physically duplicates node's subtree starting at idx,
// arriving by label and ignoring any prior canonical placement. Used to
// resolve the multi-parent case described above.
func (e *encoder) cloneSubtree(idx int32, label byte, nodeID int32, a *arena) {
	e.growTo(idx)
	e.claim(idx)
	n := a.get(nodeID)
	u := uint32(label)
	if n.terminal {
		u |= hasLeafBit
	}
	e.units[idx] = u

	arcs := e.collectArcsFresh(n)
	if len(arcs) == 0 {
		return
	}
	base := e.searchFreeBase(arcs)
	e.setBase(idx, base)
	if e.guideChild != nil {
		e.writeGuide(idx, base, arcs)
	}
	for _, ar := range arcs {
		e.claim(base ^ int32(ar.label))
	}
	for _, ar := range arcs {
		cidx := base ^ int32(ar.label)
		if ar.isValue {
			e.growTo(cidx)
			e.claim(cidx)
			e.units[cidx] = ar.value & unitValueMask
			continue
		}
		e.cloneSubtree(cidx, ar.label, ar.childNodeID, a)
	}
}

func (e *encoder) collectArcsFresh(n *node) []arcSpec {
	arcs := make([]arcSpec, 0, len(n.transitions)+1)
	for _, t := range n.transitions {
		arcs = append(arcs, arcSpec{label: t.label, fixed: -1, childNodeID: t.child})
	}
	if e.codec == CodecInt31 && n.terminal {
		arcs = append(arcs, arcSpec{label: 0, fixed: -1, isValue: true, value: n.value})
	}
	return arcs
}

func (e *encoder) setBase(idx, base int32) {
	e.growTo(idx)
	e.growTo(base)
	e.claim(base)
	cur := e.units[idx]
	hasLeaf := cur & hasLeafBit
	check := cur & unitCheckMask
	e.units[idx] = hasLeaf | (uint32(base)<<unitBaseShift)&unitBaseMask | check
}

// writeGuide records child(idx) = smallest real (non-value) label, and
// sibling(childIdx) = the next real label after each transition, enabling
// non-recursive in-order completion.
func (e *encoder) writeGuide(idx, base int32, arcs []arcSpec) {
	real := make([]arcSpec, 0, len(arcs))
	for _, ar := range arcs {
		if !ar.isValue {
			real = append(real, ar)
		}
	}
	if len(real) == 0 {
		return
	}
	e.growGuideTo(idx)
	e.guideChild[idx] = real[0].label
	for i, ar := range real {
		childIdx := base ^ int32(ar.label)
		e.growGuideTo(childIdx)
		if i+1 < len(real) {
			e.guideSibling[childIdx] = real[i+1].label
		}
	}
}

func (e *encoder) growGuideTo(idx int32) {
	for int32(len(e.guideChild)) <= idx {
		e.guideChild = append(e.guideChild, 0)
		e.guideSibling = append(e.guideSibling, 0)
	}
}

func (e *encoder) growTo(idx int32) {
	for int32(len(e.units)) <= idx {
		n := int32(len(e.units))
		e.units = append(e.units, 0)
		e.freeNext = append(e.freeNext, -1)
		e.freePrev = append(e.freePrev, -1)
		e.pushFree(n)
	}
}

func (e *encoder) pushFree(idx int32) {
	e.freeNext[idx] = e.head
	e.freePrev[idx] = -1
	if e.head != -1 {
		e.freePrev[e.head] = idx
	}
	e.head = idx
}

func (e *encoder) claim(idx int32) {
	if e.isFreeIndex(idx) {
		p, n := e.freePrev[idx], e.freeNext[idx]
		if p != -1 {
			e.freeNext[p] = n
		} else {
			e.head = n
		}
		if n != -1 {
			e.freePrev[n] = p
		}
	}
	e.claimed.Set(uint(idx))
}

func (e *encoder) isFreeIndex(idx int32) bool {
	return idx >= 0 && idx < int32(len(e.units)) && !e.claimed.Test(uint(idx))
}

// isFree reports whether idx is available, growing the array first so an
// index just beyond the current tail still resolves correctly (freshly
// grown slots start out free).
func (e *encoder) isFree(idx int32) bool {
	if idx < 0 {
		return false
	}
	e.growTo(idx)
	return !e.claimed.Test(uint(idx))
}
