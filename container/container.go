// Package container defines the hierarchical storage boundary the library
// codec writes into and reads from: a tree of named storages, each holding
// named byte streams.
//
// The codec itself is host-agnostic. [Memory] is the reference
// implementation, suitable for tests and for staging output before an
// atomic swap. [SaveZip] and [LoadZip] serialize a storage tree to and
// from a zip archive, mapping storages to path prefixes and streams to
// entries; this is a convenience host, not a claim of byte compatibility
// with any proprietary container format.
//
// A single Storage handle is not safe for concurrent use; callers
// processing distinct documents concurrently must give each its own
// container handle.
package container

import (
	"errors"
	"io"
)

// Errors reported by Storage implementations.
var (
	ErrStreamNotFound  = errors.New("container: stream not found")
	ErrStorageNotFound = errors.New("container: storage not found")
)

// Storage is one node of the container tree.
type Storage interface {
	// Storage returns the named child storage, creating it if absent.
	Storage(name string) (Storage, error)

	// OpenStorage returns an existing child storage, or
	// ErrStorageNotFound.
	OpenStorage(name string) (Storage, error)

	// WriteStream creates or replaces the named stream with the bytes fn
	// writes. The stream is flushed and closed on every exit path,
	// including when fn fails; on failure the stream is not committed.
	WriteStream(name string, fn func(io.Writer) error) error

	// OpenStream returns a reader over an existing stream's bytes, or
	// ErrStreamNotFound. The caller must close it.
	OpenStream(name string) (io.ReadCloser, error)

	// Storages lists the child storage names in creation order.
	Storages() []string

	// Streams lists the stream names in creation order.
	Streams() []string
}
