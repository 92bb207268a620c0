// Package dawg implements immutable, minimal acyclic finite-state automata
// (DAWGs) as compact associative containers over byte-string keys.
//
// A container is built once from a complete key set — KeySet and
// CompletionSet for plain membership, IntMap for integer-valued keys,
// BytesMap and RecordMap for arbitrary or fixed-width tuple payloads — and
// is read-only from that point on: there is no insert or delete after
// construction. What the automaton buys in exchange is density: structurally
// identical suffixes across the whole key set are stored exactly once, so a
// dictionary of hundreds of thousands of natural-language words or URLs
// typically collapses to a small multiple of its distinct-suffix count
// rather than growing linearly with total key-byte count.
//
// Construction runs Builder (the incremental Daciuk et al. minimization
// algorithm) over a sorted key stream, producing a minimal DAG of states,
// then Encoder lays that DAG out as a flat double-array (BASE/CHECK)
// transition table plus an optional completion guide. Both artifacts
// serialize to a small binary format readable without reconstructing the
// automaton.
package dawg
