package core

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aaraminowicz/AltiumSharp/internal/filters"
)

// Sub-block body layout: u8 key length, key bytes, u32 little-endian
// original payload length, zlib-compressed payload. The whole body is
// wrapped in one length-prefixed block.

// Compress compresses a payload for a compressed storage sub-block. It is
// exposed separately from WriteCompressedRecord so callers may compress
// independent payloads concurrently and emit them sequentially.
func Compress(payload []byte) ([]byte, error) {
	return filters.ZlibEncode(payload)
}

// WriteCompressedRecord writes one compressed storage sub-block from an
// already-compressed payload. originalLen is the uncompressed payload
// length, recorded so the reader can validate the decompression.
func WriteCompressedRecord(w io.Writer, key string, originalLen int, compressed []byte) error {
	if len(key) > 255 {
		return fmt.Errorf("compressed storage key %q exceeds 255 bytes", key)
	}
	return WriteBlock(w, func(bw io.Writer) error {
		if _, err := bw.Write([]byte{byte(len(key))}); err != nil {
			return err
		}
		if _, err := io.WriteString(bw, key); err != nil {
			return err
		}
		if err := WriteUint32(bw, uint32(originalLen)); err != nil {
			return err
		}
		_, err := bw.Write(compressed)
		return err
	})
}

// WriteCompressedStorage compresses payload and writes it as a named
// sub-block. The key must be unique within the enclosing manifest; the
// framing layer does not enforce uniqueness, the manifest writer does.
func WriteCompressedStorage(w io.Writer, key string, payload []byte) error {
	compressed, err := Compress(payload)
	if err != nil {
		return err
	}
	return WriteCompressedRecord(w, key, len(payload), compressed)
}

// ReadCompressedStorage reads one sub-block written by
// WriteCompressedStorage, returning its key and decompressed payload. A
// payload that cannot be decompressed, or whose decompressed size
// disagrees with the recorded original length, is a *CorruptBlockError.
func ReadCompressedStorage(r *Reader) (string, []byte, error) {
	start := r.Offset()
	body, err := ReadBlock(r)
	if err != nil {
		return "", nil, err
	}
	if len(body) < 1 {
		return "", nil, &CorruptBlockError{Offset: start, Reason: "compressed storage sub-block is empty"}
	}
	keyLen := int(body[0])
	if len(body) < 1+keyLen+4 {
		return "", nil, &CorruptBlockError{Offset: start, Reason: "compressed storage header exceeds sub-block body"}
	}
	key := string(body[1 : 1+keyLen])
	originalLen := int(binary.LittleEndian.Uint32(body[1+keyLen : 5+keyLen]))

	payload, err := filters.ZlibDecode(body[5+keyLen:], originalLen)
	if err != nil {
		return "", nil, &CorruptBlockError{Offset: start, Reason: err.Error()}
	}
	return key, payload, nil
}
