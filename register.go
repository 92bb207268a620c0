package dawg

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// register is the build-time equivalence register: a hash set keyed by a
// node's structural signature (terminal flag, ordered (label, canonical
// child) pairs, and — for the int codec — the terminal value). Two nodes
// with equal signatures are equivalent and collapse to one canonical id,
// which is what makes the constructed automaton minimal.
//
// Each node caches its signature hash (node.sigHash) and only recomputes it
// after the node changes (node.sigValid is cleared by arena.addChild, by
// builder.rewireLastChild, and when a key ends at the node). This keeps incremental construction near-linear instead
// of re-hashing a node's full transition list on every freeze.
type register struct {
	arena   *arena
	codec   Codec
	buckets map[uint64][]int32
	scratch []byte
}

func newRegister(a *arena, codec Codec) *register {
	return &register{arena: a, codec: codec, buckets: make(map[uint64][]int32)}
}

// signature returns the canonical byte encoding of id's structural shape,
// reusing r.scratch to avoid an allocation per call.
func (r *register) signature(id int32) []byte {
	n := r.arena.get(id)
	buf := r.scratch[:0]
	if n.terminal {
		buf = append(buf, 1)
		if r.codec == CodecInt31 {
			var v [4]byte
			binary.LittleEndian.PutUint32(v[:], n.value)
			buf = append(buf, v[:]...)
		}
	} else {
		buf = append(buf, 0)
	}
	for _, e := range n.transitions {
		var childBytes [4]byte
		binary.LittleEndian.PutUint32(childBytes[:], uint32(e.child))
		buf = append(buf, e.label)
		buf = append(buf, childBytes[:]...)
	}
	r.scratch = buf
	return buf
}

func (r *register) hash(id int32) uint64 {
	n := r.arena.get(id)
	if n.sigValid {
		return n.sigHash
	}
	h := xxhash.Sum64(r.signature(id))
	n.sigHash = h
	n.sigValid = true
	return h
}

// find returns an existing canonical node with the same signature as id, if
// one has already been registered.
func (r *register) find(id int32) (int32, bool) {
	h := r.hash(id)
	// signature reuses r.scratch as its backing buffer, so copy out before
	// the comparison loop recomputes (and overwrites) scratch for each
	// candidate.
	sig := append([]byte(nil), r.signature(id)...)
	for _, cand := range r.buckets[h] {
		if r.equal(cand, sig) {
			return cand, true
		}
	}
	return 0, false
}

func (r *register) equal(candidate int32, sig []byte) bool {
	candSig := append([]byte(nil), r.signature(candidate)...)
	if len(candSig) != len(sig) {
		return false
	}
	for i := range sig {
		if candSig[i] != sig[i] {
			return false
		}
	}
	return true
}

func (r *register) insert(id int32) {
	h := r.hash(id)
	r.buckets[h] = append(r.buckets[h], id)
}

// canonicalize registers id if it is the first node with its signature,
// otherwise returns the previously registered equivalent.
func (r *register) canonicalize(id int32) int32 {
	if existing, ok := r.find(id); ok {
		return existing
	}
	r.insert(id)
	return id
}
