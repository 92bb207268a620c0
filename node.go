package dawg

// edge is a single labeled transition in the build-time node graph.
type edge struct {
	label byte
	child int32
}

// node is a build-time automaton node held in the builder's arena. Nodes are
// identified by their index into arena.nodes; parent-to-child edges are index
// references, never owning pointers, so that the equivalence register can
// freely alias multiple parents onto one canonical child.
type node struct {
	transitions []edge // sorted ascending by label
	terminal    bool
	value       uint32 // IntMap payload when terminal; unused otherwise
	sigHash     uint64
	sigValid    bool
}

// arena owns every node allocated during a single build. Index 0 is always
// the root. The arena is discarded once Encoder has produced the flat
// dictionary/guide arrays.
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{nodes: make([]node, 1, 64)}
}

func (a *arena) get(id int32) *node {
	return &a.nodes[id]
}

func (a *arena) alloc() int32 {
	a.nodes = append(a.nodes, node{})
	return int32(len(a.nodes) - 1)
}

// addChild appends a new outgoing transition and invalidates the cached
// signature hash; transitions must be appended in increasing label order,
// which incremental construction (builder.go) guarantees.
func (a *arena) addChild(parent int32, label byte, child int32) {
	n := a.get(parent)
	n.transitions = append(n.transitions, edge{label: label, child: child})
	n.sigValid = false
}
