// Package core provides the low-level block framing primitives of the
// schematic library binary format.
//
// Everything in a library file above the container layer is built from
// three framing shapes:
//
//   - [WriteBlock] / [ReadBlock] - a 4-byte little-endian length prefix
//     followed by exactly that many body bytes.
//   - [WriteStringBlock] / [ReadStringBlock] - a length-prefixed text
//     token whose declared length counts the text bytes plus one NUL
//     terminator. The terminator is written and verified on read; it is
//     part of the wire contract, not padding.
//   - [WriteCompressedStorage] / [ReadCompressedStorage] - a named
//     sub-block whose payload is zlib-compressed, recording both the key
//     and the original (uncompressed) payload length.
//
// Reads go through a [Reader], which tracks the absolute byte offset
// consumed so that framing failures can report where in the stream they
// occurred. A declared length that exceeds the bytes actually available is
// always surfaced as a [TruncatedBlockError], never as a short read.
package core
