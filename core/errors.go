package core

import "fmt"

// TruncatedBlockError reports a block whose declared length exceeds the
// bytes remaining in the stream.
type TruncatedBlockError struct {
	Offset    int64 // byte offset of the block's length prefix
	Declared  int   // length the prefix promised
	Available int   // bytes actually available
}

func (e *TruncatedBlockError) Error() string {
	return fmt.Sprintf("truncated block at offset %d: declared %d bytes, only %d available", e.Offset, e.Declared, e.Available)
}

// CorruptBlockError reports a block whose body violates its own framing:
// a missing string terminator, an undecodable compressed payload, or a
// decompressed size that disagrees with the recorded original length.
type CorruptBlockError struct {
	Offset int64
	Reason string
}

func (e *CorruptBlockError) Error() string {
	return fmt.Sprintf("corrupt block at offset %d: %s", e.Offset, e.Reason)
}
