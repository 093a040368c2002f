package params

import (
	"fmt"
	"strings"
)

// EncodingError reports parameter text that cannot be encoded or decoded:
// an illegal key, an unescapable delimiter collision, or bytes that do not
// decode in the collection's declared charset.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "parameter encoding: " + e.Reason
}

// Pair is one key/value entry of a collection.
type Pair struct {
	Key   string
	Value string
}

// Collection is an ordered set of key/value pairs. Keys are unique
// case-insensitively; insertion order is preserved and significant for
// byte-identical re-encoding. The zero value is not usable; call New.
type Collection struct {
	pairs []Pair
	index map[string]int // folded key -> position in pairs

	// Unicode selects UTF-16LE encoding for the collection's text.
	// Decode sets it from the byte order mark of the input.
	Unicode bool
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{index: make(map[string]int)}
}

func fold(key string) string {
	return strings.ToUpper(key)
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	return !strings.ContainsAny(key, "|=%\x00")
}

// Add appends or replaces a pair, always emitting it on encode. Adding a
// key that already exists (case-insensitively) overwrites the value in
// place, keeping the original position and spelling. Keys containing the
// delimiter, '=', '%' or NUL are rejected.
func (c *Collection) Add(key, value string) error {
	if !validKey(key) {
		return &EncodingError{Reason: fmt.Sprintf("invalid parameter key %q", key)}
	}
	if i, ok := c.index[fold(key)]; ok {
		c.pairs[i].Value = value
		return nil
	}
	c.index[fold(key)] = len(c.pairs)
	c.pairs = append(c.pairs, Pair{Key: key, Value: value})
	return nil
}

// Remove deletes a key if present.
func (c *Collection) Remove(key string) {
	i, ok := c.index[fold(key)]
	if !ok {
		return
	}
	c.pairs = append(c.pairs[:i], c.pairs[i+1:]...)
	delete(c.index, fold(key))
	for k, pos := range c.index {
		if pos > i {
			c.index[k] = pos - 1
		}
	}
}

// Has reports whether the key is present.
func (c *Collection) Has(key string) bool {
	_, ok := c.index[fold(key)]
	return ok
}

// Len returns the number of pairs.
func (c *Collection) Len() int {
	return len(c.pairs)
}

// Pairs returns the pairs in insertion order. The slice is shared; callers
// must not mutate it.
func (c *Collection) Pairs() []Pair {
	return c.pairs
}

// Clone returns an independent copy of the collection.
func (c *Collection) Clone() *Collection {
	out := New()
	out.Unicode = c.Unicode
	out.pairs = append(out.pairs, c.pairs...)
	for k, v := range c.index {
		out.index[k] = v
	}
	return out
}
