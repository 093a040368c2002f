package container

import (
	"bytes"
	"io"
)

// Memory is a map-backed Storage. It preserves creation order for
// deterministic enumeration and keeps every stream fully in memory.
type Memory struct {
	storages     map[string]*Memory
	storageOrder []string
	streams      map[string][]byte
	streamOrder  []string
}

// NewMemory returns an empty in-memory storage tree.
func NewMemory() *Memory {
	return &Memory{
		storages: make(map[string]*Memory),
		streams:  make(map[string][]byte),
	}
}

// Storage returns the named child, creating it if absent.
func (m *Memory) Storage(name string) (Storage, error) {
	if child, ok := m.storages[name]; ok {
		return child, nil
	}
	child := NewMemory()
	m.storages[name] = child
	m.storageOrder = append(m.storageOrder, name)
	return child, nil
}

// OpenStorage returns an existing child or ErrStorageNotFound.
func (m *Memory) OpenStorage(name string) (Storage, error) {
	if child, ok := m.storages[name]; ok {
		return child, nil
	}
	return nil, ErrStorageNotFound
}

// WriteStream buffers fn's output and commits it as the named stream. A
// failing fn leaves any previous stream contents untouched.
func (m *Memory) WriteStream(name string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	if _, ok := m.streams[name]; !ok {
		m.streamOrder = append(m.streamOrder, name)
	}
	m.streams[name] = buf.Bytes()
	return nil
}

// OpenStream returns a reader over the named stream's bytes.
func (m *Memory) OpenStream(name string) (io.ReadCloser, error) {
	data, ok := m.streams[name]
	if !ok {
		return nil, ErrStreamNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Storages lists child storages in creation order.
func (m *Memory) Storages() []string {
	return append([]string(nil), m.storageOrder...)
}

// Streams lists streams in creation order.
func (m *Memory) Streams() []string {
	return append([]string(nil), m.streamOrder...)
}
