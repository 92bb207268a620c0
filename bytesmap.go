package dawg

import (
	"bytes"
	"encoding/base64"
)

const defaultSeparator byte = 0x01

// BytesMap maps byte-string keys to arbitrary byte-string payloads, reusing
// KeySet/CompletionSet's pure-key machinery rather than inventing a second
// codec: each entry is stored as one synthetic key, rawKey + separator +
// base64(payload), and a lookup walks rawKey+separator and then completes
// the remaining branches back into payloads (a key may carry several: Get
// returns the first, GetAll returns all). This trades base64's one-third
// size increase on disk for reusing
// the exact same minimal, serializable automaton the other containers use —
// no second encoding path to maintain.
type BytesMap struct {
	a   *automaton
	sep byte
}

// BytesMapEntry pairs a key with its payload for construction.
type BytesMapEntry struct {
	Key     []byte
	Payload []byte
}

// NewBytesMap builds a BytesMap using the default separator byte (0x01).
// Use NewBytesMapSeparator to pick a different one.
func NewBytesMap(entries []BytesMapEntry, sorted bool) (*BytesMap, error) {
	return NewBytesMapSeparator(entries, sorted, defaultSeparator)
}

// NewBytesMapSeparator builds a BytesMap using sep as the byte joining each
// raw key to its base64-encoded payload. sep must not be 0x00 and must not
// collide with a URL-safe base64 alphabet character; no raw key may contain
// sep either.
func NewBytesMapSeparator(entries []BytesMapEntry, sorted bool, sep byte) (*BytesMap, error) {
	if err := validateSeparator(sep); err != nil {
		return nil, err
	}
	raw := make([]rawEntry, len(entries))
	enc := base64.RawURLEncoding
	for i, e := range entries {
		if bytes.IndexByte(e.Key, sep) >= 0 {
			return nil, newBuildErr(ErrInvalidKey, e.Key, "key byte collides with the payload separator")
		}
		synthetic := make([]byte, 0, len(e.Key)+1+enc.EncodedLen(len(e.Payload)))
		synthetic = append(synthetic, e.Key...)
		synthetic = append(synthetic, sep)
		synthetic = appendBase64(synthetic, enc, e.Payload)
		raw[i] = rawEntry{key: synthetic}
	}
	a, err := buildAutomaton(raw, buildOptions{codec: CodecNone, sorted: sorted, withGuide: true})
	if err != nil {
		return nil, err
	}
	return &BytesMap{a: a, sep: sep}, nil
}

func appendBase64(dst []byte, enc *base64.Encoding, payload []byte) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, enc.EncodedLen(len(payload)))...)
	enc.Encode(dst[start:], payload)
	return dst
}

func validateSeparator(sep byte) error {
	if sep == 0x00 {
		return newBuildErr(ErrBadSeparator, nil, "separator must not be 0x00")
	}
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	if bytes.IndexByte([]byte(alphabet), sep) >= 0 {
		return newBuildErr(ErrBadSeparator, nil, "separator collides with the base64 alphabet")
	}
	return nil
}

// Get returns the payload stored for key and whether key was present. The
// returned slice is freshly allocated.
func (m *BytesMap) Get(key []byte) ([]byte, bool) {
	if m == nil || m.a == nil {
		return nil, false
	}
	root, ok := m.a.prefixNode(append(append([]byte(nil), key...), m.sep))
	if !ok {
		return nil, false
	}
	c := newCompleter(&m.a.dict, &m.a.guide, root, nil)
	encoded, ok := c.next()
	if !ok {
		return nil, false
	}
	return decodeBase64(encoded)
}

// GetAll returns every payload stored under key (BytesMap allows repeated
// keys with distinct payloads, unlike the plain sets and IntMap).
func (m *BytesMap) GetAll(key []byte) [][]byte {
	if m == nil || m.a == nil {
		return nil
	}
	root, ok := m.a.prefixNode(append(append([]byte(nil), key...), m.sep))
	if !ok {
		return nil
	}
	var out [][]byte
	c := newCompleter(&m.a.dict, &m.a.guide, root, nil)
	for {
		encoded, ok := c.next()
		if !ok {
			return out
		}
		if payload, ok := decodeBase64(encoded); ok {
			out = append(out, payload)
		}
	}
}

func decodeBase64(encoded []byte) ([]byte, bool) {
	out := make([]byte, base64.RawURLEncoding.DecodedLen(len(encoded)))
	n, err := base64.RawURLEncoding.Decode(out, encoded)
	if err != nil {
		return nil, false
	}
	return out[:n], true
}

// Contains reports whether key has at least one stored payload.
func (m *BytesMap) Contains(key []byte) bool {
	if m == nil || m.a == nil {
		return false
	}
	root, ok := m.a.prefixNode(append(append([]byte(nil), key...), m.sep))
	if !ok {
		return false
	}
	c := newCompleter(&m.a.dict, &m.a.guide, root, nil)
	_, ok = c.next()
	return ok
}

// BytesMapItem pairs a raw key with one of its payloads.
type BytesMapItem struct {
	Key     []byte
	Payload []byte
}

// Items returns every (key, payload) pair in the map in the order of the
// stored synthetic keys. With the default separator, which sorts below every
// legal key byte, that is lexicographic key order; with a separator that
// sorts above some key byte it may not be. Within a key, payloads come in
// the order their base64 encodings sort.
func (m *BytesMap) Items() []BytesMapItem {
	var out []BytesMapItem
	c := m.a.newCompleter(nil)
	for {
		synthetic, ok := c.next()
		if !ok {
			break
		}
		key, encoded, ok := splitSeparator(synthetic, m.sep)
		if !ok {
			continue
		}
		payload, ok := decodeBase64(encoded)
		if !ok {
			continue
		}
		out = append(out, BytesMapItem{
			Key:     append([]byte(nil), key...),
			Payload: payload,
		})
	}
	return out
}

func splitSeparator(synthetic []byte, sep byte) (key, rest []byte, ok bool) {
	i := bytes.IndexByte(synthetic, sep)
	if i < 0 {
		return nil, nil, false
	}
	return synthetic[:i], synthetic[i+1:], true
}
