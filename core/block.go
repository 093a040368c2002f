package core

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Reader wraps an io.Reader and tracks the absolute byte offset consumed,
// so framing errors can report where decoding failed.
type Reader struct {
	r      io.Reader
	offset int64
}

// NewReader returns a Reader positioned at offset zero.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// read fills buf completely, advancing the offset by the bytes actually
// read. On a short read it returns the byte count along with the error.
func (r *Reader) read(buf []byte) (int, error) {
	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)
	return n, err
}

// WriteBlock buffers body's output, writes a 4-byte little-endian length
// prefix, then the buffered bytes.
func WriteBlock(w io.Writer, body func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := body(&buf); err != nil {
		return err
	}
	if err := WriteUint32(w, uint32(buf.Len())); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadBlock reads one length-prefixed block and returns its body. At a
// clean end of the block sequence it returns io.EOF; a length prefix that
// promises more bytes than remain yields a *TruncatedBlockError.
func ReadBlock(r *Reader) ([]byte, error) {
	start := r.offset
	var prefix [4]byte
	n, err := r.read(prefix[:])
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &TruncatedBlockError{Offset: start, Declared: 4, Available: n}
	}

	length := int(binary.LittleEndian.Uint32(prefix[:]))
	body := make([]byte, length)
	if n, err := r.read(body); err != nil {
		return nil, &TruncatedBlockError{Offset: start, Declared: length, Available: n}
	}
	return body, nil
}

// WriteStringBlock writes a length-prefixed text token. The declared
// length counts the text bytes plus one NUL terminator, and the terminator
// byte is written after the text; existing files depend on this exact
// convention.
func WriteStringBlock(w io.Writer, s string) error {
	if err := WriteUint32(w, uint32(len(s)+1)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

// ReadStringBlock reads one token written by WriteStringBlock, verifying
// and stripping the NUL terminator.
func ReadStringBlock(r *Reader) (string, error) {
	start := r.offset
	body, err := ReadBlock(r)
	if err != nil {
		return "", err
	}
	if len(body) == 0 || body[len(body)-1] != 0 {
		return "", &CorruptBlockError{Offset: start, Reason: "string block missing NUL terminator"}
	}
	return string(body[:len(body)-1]), nil
}

// WriteUint32 writes a little-endian uint32.
func WriteUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadUint32 reads a little-endian uint32.
func ReadUint32(r *Reader) (uint32, error) {
	start := r.offset
	var b [4]byte
	n, err := r.read(b[:])
	if err != nil {
		return 0, &TruncatedBlockError{Offset: start, Declared: 4, Available: n}
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// WriteUint16 writes a little-endian uint16.
func WriteUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadUint16 reads a little-endian uint16.
func ReadUint16(r *Reader) (uint16, error) {
	start := r.offset
	var b [2]byte
	n, err := r.read(b[:])
	if err != nil {
		return 0, &TruncatedBlockError{Offset: start, Declared: 2, Available: n}
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}
