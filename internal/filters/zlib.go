package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibEncode compresses data with zlib (RFC 1950) at the default level.
func ZlibEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ZlibDecode decompresses zlib-compressed data. If originalLen is
// non-negative the decompressed size is checked against it and a mismatch
// is reported as an error rather than returning short data.
func ZlibDecode(data []byte, originalLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	if originalLen >= 0 && buf.Len() != originalLen {
		return nil, fmt.Errorf("decompressed length %d does not match declared length %d", buf.Len(), originalLen)
	}
	return buf.Bytes(), nil
}
