// Package sectionkeys maps logical component reference names onto
// container-safe storage identifiers.
//
// Most names map to themselves. A name is substituted when it contains
// characters the container cannot store, exceeds the identifier length
// limit, or collides with a key already assigned in the same document.
// Substitutes are the sanitized name truncated for suffix room plus the
// smallest free decimal counter, so the same name written repeatedly
// resolves to the same key regardless of unrelated components.
//
// Every non-identity mapping is recorded in a manifest (the SectionKeys
// stream): a KEYCOUNT parameter followed by LIBREFi/SECTIONKEYi pairs.
// Names absent from the manifest resolve by identity on read.
package sectionkeys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aaraminowicz/AltiumSharp/params"
)

// ErrKeyCollisionExhausted is returned when disambiguation cannot produce
// a unique key within the counter range. It indicates a pathological
// document, not a normal failure mode.
var ErrKeyCollisionExhausted = errors.New("sectionkeys: could not produce a unique section key")

const (
	// maxKeyLen is the container's storage identifier limit.
	maxKeyLen = 31
	// baseLen leaves room for the disambiguation counter.
	baseLen = maxKeyLen - 4
	// maxCounter bounds the disambiguation scan.
	maxCounter = 9999
)

// Mapping is one non-identity entry of the manifest.
type Mapping struct {
	LibReference string
	SectionKey   string
}

// Resolver assigns storage identifiers for one document. Keys are unique
// case-insensitively, matching the container's name semantics. The zero
// value is not usable; call NewResolver.
type Resolver struct {
	used     map[string]bool   // folded key -> taken
	assigned map[string]string // raw name -> resolved key
	mappings []Mapping
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		used:     make(map[string]bool),
		assigned: make(map[string]string),
	}
}

// keyChar reports whether c may appear in a storage identifier.
func keyChar(c byte) bool {
	if c < 0x20 || c > 0x7E {
		return false
	}
	switch c {
	case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
		return false
	}
	return true
}

// sanitize replaces disallowed characters with underscores. It does not
// truncate; length is the caller's concern.
func sanitize(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if keyChar(name[i]) {
			b.WriteByte(name[i])
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Resolve returns the storage identifier for a reference name, assigning
// one on first use. The mapping is identity whenever the raw name is
// container-safe and not already taken; otherwise the sanitized name is
// truncated and suffixed with the smallest free counter. Repeated calls
// with the same name return the same key.
func (r *Resolver) Resolve(name string) (string, error) {
	if key, ok := r.assigned[name]; ok {
		return key, nil
	}

	clean := sanitize(name)
	if clean == name && len(name) <= maxKeyLen && !r.used[strings.ToUpper(name)] {
		r.take(name, name)
		return name, nil
	}

	base := clean
	if len(base) > baseLen {
		base = base[:baseLen]
	}
	for n := 0; n <= maxCounter; n++ {
		candidate := base + strconv.Itoa(n)
		if !r.used[strings.ToUpper(candidate)] {
			r.take(name, candidate)
			r.mappings = append(r.mappings, Mapping{LibReference: name, SectionKey: candidate})
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %q", ErrKeyCollisionExhausted, name)
}

func (r *Resolver) take(name, key string) {
	r.used[strings.ToUpper(key)] = true
	r.assigned[name] = key
}

// Mappings returns the non-identity mappings in resolution order. An empty
// result means no manifest is needed.
func (r *Resolver) Mappings() []Mapping {
	return r.mappings
}

// Manifest encodes the non-identity mappings as a parameter collection:
// KEYCOUNT plus LIBREFi/SECTIONKEYi pairs.
func (r *Resolver) Manifest() (*params.Collection, error) {
	c := params.New()
	if err := c.AddInt("KEYCOUNT", len(r.mappings), -1); err != nil {
		return nil, err
	}
	for i, m := range r.mappings {
		if err := c.Add("LIBREF"+strconv.Itoa(i), m.LibReference); err != nil {
			return nil, err
		}
		if err := c.Add("SECTIONKEY"+strconv.Itoa(i), m.SectionKey); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ReadManifest decodes a manifest into a reference-name to section-key
// map. Names absent from the map resolve by identity.
func ReadManifest(c *params.Collection) map[string]string {
	out := make(map[string]string)
	count := c.Int("KEYCOUNT", 0)
	for i := 0; i < count; i++ {
		ref := c.Text("LIBREF"+strconv.Itoa(i), "")
		key := c.Text("SECTIONKEY"+strconv.Itoa(i), "")
		if ref != "" && key != "" {
			out[ref] = key
		}
	}
	return out
}
