// Package filters implements the compression codec used for the library
// format's compressed sub-blocks.
//
// The format compresses per-pin auxiliary payloads and embedded binary
// assets with zlib (RFC 1950). The codec is isolated here so the choice of
// algorithm and implementation stays a single point of change.
package filters
