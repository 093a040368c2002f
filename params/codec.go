package params

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const (
	delimiter = '|'
	separator = '='
)

var valueEscaper = strings.NewReplacer("%", "%25", "|", "%7C", "\x00", "%00")

func escapeValue(s string) string {
	if !strings.ContainsAny(s, "%|\x00") {
		return s
	}
	return valueEscaper.Replace(s)
}

func unescapeValue(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", &EncodingError{Reason: fmt.Sprintf("dangling escape in value %q", s)}
		}
		hi, okHi := unhex(s[i+1])
		lo, okLo := unhex(s[i+2])
		if !okHi || !okLo {
			return "", &EncodingError{Reason: fmt.Sprintf("invalid escape %q in value %q", s[i:i+3], s)}
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// Encode renders the collection as delimiter-separated KEY=VALUE text with
// a trailing NUL, in the collection's declared charset. When Unicode is
// set the text (terminator included) is UTF-16LE with a byte order mark.
func (c *Collection) Encode() ([]byte, error) {
	var b strings.Builder
	for _, p := range c.pairs {
		b.WriteByte(delimiter)
		b.WriteString(p.Key)
		b.WriteByte(separator)
		b.WriteString(escapeValue(p.Value))
	}
	b.WriteByte(0)

	if !c.Unicode {
		return []byte(b.String()), nil
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.Bytes([]byte(b.String()))
	if err != nil {
		return nil, &EncodingError{Reason: fmt.Sprintf("UTF-16 encoding failed: %v", err)}
	}
	return out, nil
}

// Decode parses one encoded parameter block. The charset is taken from the
// data itself: a UTF-16LE byte order mark selects Unicode mode, anything
// else is read as 8-bit text. The decoded collection preserves pair order
// exactly, so re-encoding reproduces the input bytes.
func Decode(data []byte) (*Collection, error) {
	c := New()

	text := string(data)
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		c.Unicode = true
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		decoded, err := dec.Bytes(data)
		if err != nil {
			return nil, &EncodingError{Reason: fmt.Sprintf("UTF-16 decoding failed: %v", err)}
		}
		text = string(decoded)
	}
	text = strings.TrimSuffix(text, "\x00")

	for _, seg := range strings.Split(text, string(delimiter)) {
		if seg == "" {
			continue
		}
		key, raw, ok := strings.Cut(seg, string(separator))
		if !ok {
			return nil, &EncodingError{Reason: fmt.Sprintf("parameter segment %q has no separator", seg)}
		}
		value, err := unescapeValue(raw)
		if err != nil {
			return nil, err
		}
		if err := c.Add(key, value); err != nil {
			return nil, err
		}
	}
	return c, nil
}
