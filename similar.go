package dawg

import "sort"

// ReplaceTable is a compiled set of byte-sequence substitutions used to
// generate keys "similar" to an input for dictionaries that store a
// normalized or phonetic variant of each real key — the classic use being a
// keyboard-layout or diacritic confusion table ("e" <-> "ё", "a" <-> "а").
// It is not a sub-linear fuzzy index: similarity search still walks the
// automaton once per alternative spelling it generates.
type ReplaceTable struct {
	bySource map[string][]string
	maxSrc   int
}

// CompileReplaces builds a ReplaceTable from a set of (source, replacement)
// pairs. A source may map to multiple replacements; all are tried.
func CompileReplaces(pairs map[string][]string) *ReplaceTable {
	t := &ReplaceTable{bySource: make(map[string][]string, len(pairs))}
	for src, repls := range pairs {
		if len(src) == 0 {
			continue
		}
		t.bySource[src] = append([]string(nil), repls...)
		if len(src) > t.maxSrc {
			t.maxSrc = len(src)
		}
	}
	return t
}

// similarKeys walks the automaton depth-first, expanding key at every
// position where table has a substitution and trying the literal byte(s)
// before each replacement. Results are deduplicated and then sorted
// lexicographically, so the returned order does not reflect the walk order
// or where substitutions were made.
func (a *automaton) similarKeys(key []byte, table *ReplaceTable) [][]byte {
	if table == nil || len(table.bySource) == 0 {
		if a.contains(key) {
			return [][]byte{append([]byte(nil), key...)}
		}
		return nil
	}

	seen := make(map[string]bool)
	var out [][]byte
	var buf []byte

	var walk func(pos int, idx int32)
	walk = func(pos int, idx int32) {
		if pos == len(key) {
			if a.dict.hasValue(idx) {
				s := string(buf)
				if !seen[s] {
					seen[s] = true
					out = append(out, append([]byte(nil), buf...))
				}
			}
			return
		}

		// Literal byte first.
		if next, ok := a.dict.followByte(idx, key[pos]); ok {
			buf = append(buf, key[pos])
			walk(pos+1, next)
			buf = buf[:len(buf)-1]
		}

		// Then every substitution rooted at pos, longest source first so a
		// multi-byte confusable is preferred over a prefix of it.
		for srcLen := table.maxSrc; srcLen >= 1; srcLen-- {
			if pos+srcLen > len(key) {
				continue
			}
			src := string(key[pos : pos+srcLen])
			repls, ok := table.bySource[src]
			if !ok {
				continue
			}
			for _, repl := range repls {
				next, ok := a.dict.followBytes(idx, []byte(repl))
				if !ok {
					continue
				}
				buf = append(buf, repl...)
				walk(pos+srcLen, next)
				buf = buf[:len(buf)-len(repl)]
			}
		}
	}

	walk(0, a.root())
	sort.Slice(out, func(i, j int) bool { return compareKeys(out[i], out[j]) < 0 })
	return out
}
