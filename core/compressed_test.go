package core

import (
	"bytes"
	"errors"
	"testing"
)

// TestCompressedStorageRoundTrip tests that named compressed sub-blocks
// read back with their keys and payloads intact.
func TestCompressedStorageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	entries := map[string][]byte{
		"0": []byte("pin zero text data"),
		"7": bytes.Repeat([]byte("compressible "), 200),
		"2": {},
	}
	order := []string{"0", "7", "2"}
	for _, key := range order {
		if err := WriteCompressedStorage(&buf, key, entries[key]); err != nil {
			t.Fatalf("WriteCompressedStorage(%q) failed: %v", key, err)
		}
	}

	r := NewReader(&buf)
	for _, want := range order {
		key, payload, err := ReadCompressedStorage(r)
		if err != nil {
			t.Fatalf("ReadCompressedStorage failed: %v", err)
		}
		if key != want {
			t.Errorf("key = %q, want %q", key, want)
		}
		if !bytes.Equal(payload, entries[want]) {
			t.Errorf("payload for %q does not round trip", want)
		}
	}
}

// TestCompressedStorageCompresses tests that a repetitive payload really
// shrinks on the wire.
func TestCompressedStorageCompresses(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 512)
	var buf bytes.Buffer
	if err := WriteCompressedStorage(&buf, "big", payload); err != nil {
		t.Fatalf("WriteCompressedStorage failed: %v", err)
	}
	if buf.Len() >= len(payload) {
		t.Errorf("compressed sub-block (%d bytes) not smaller than payload (%d bytes)", buf.Len(), len(payload))
	}
}

// TestCompressedStorageCorrupt tests that a damaged compressed payload is
// reported, not returned truncated.
func TestCompressedStorageCorrupt(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCompressedStorage(&buf, "k", []byte("some payload")); err != nil {
		t.Fatalf("WriteCompressedStorage failed: %v", err)
	}
	data := buf.Bytes()
	// Flip bytes inside the zlib body.
	data[len(data)-2] ^= 0xFF
	data[len(data)-3] ^= 0xFF

	r := NewReader(bytes.NewReader(data))
	_, _, err := ReadCompressedStorage(r)

	var ce *CorruptBlockError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CorruptBlockError, got %v", err)
	}
}

// TestCompressedStorageShortHeader tests a sub-block whose body ends
// inside the key/length header.
func TestCompressedStorageShortHeader(t *testing.T) {
	var buf bytes.Buffer
	// Body declares a 200-byte key but holds 3 bytes.
	writeBlockBytes(t, &buf, []byte{200, 'a', 'b'})

	r := NewReader(&buf)
	_, _, err := ReadCompressedStorage(r)

	var ce *CorruptBlockError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CorruptBlockError, got %v", err)
	}
}
