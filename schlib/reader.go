package schlib

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aaraminowicz/AltiumSharp/container"
	"github.com/aaraminowicz/AltiumSharp/core"
	"github.com/aaraminowicz/AltiumSharp/params"
	"github.com/aaraminowicz/AltiumSharp/records"
	"github.com/aaraminowicz/AltiumSharp/sectionkeys"
)

// ReadOptions adjusts read behavior.
type ReadOptions struct {
	// StrictRecords fails a component on a record tag outside the known
	// variant set instead of preserving it opaquely.
	StrictRecords bool
}

// Read reads a complete library document from the container with default
// options.
func Read(st container.Storage) (*Document, error) {
	return ReadWith(st, ReadOptions{})
}

// ReadWith reads a complete library document. It either returns the whole
// document or an error; a partially populated document is never returned.
func ReadWith(st container.Storage, opts ReadOptions) (*Document, error) {
	header, names, err := readFileHeader(st)
	if err != nil {
		return nil, err
	}

	if got := len(st.Storages()); got != len(names) {
		return nil, &MalformedContainerError{
			Reason: fmt.Sprintf("header lists %d components but container holds %d component storages", len(names), got),
		}
	}

	manifest, err := readSectionKeys(st)
	if err != nil {
		return nil, err
	}
	assets, err := readAssets(st)
	if err != nil {
		return nil, err
	}

	doc := &Document{Header: header, Assets: make(map[string][]byte)}
	for _, name := range names {
		key := manifest[name]
		if key == "" {
			key = name
		}
		sub, err := st.OpenStorage(key)
		if errors.Is(err, container.ErrStorageNotFound) {
			return nil, &MalformedContainerError{Reason: fmt.Sprintf("component %q: storage %q missing", name, key)}
		}
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}
		comp, err := readComponent(sub, name, opts)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}
		doc.Components = append(doc.Components, comp)
	}

	claimed := attachAssets(doc.Components, assets)
	for name, blob := range assets {
		if !claimed[name] {
			doc.Assets[name] = blob
		}
	}
	return doc, nil
}

// readFileHeader reads the mandatory header stream: global parameters,
// component count, ordered reference names.
func readFileHeader(st container.Storage) (*params.Collection, []string, error) {
	rc, err := st.OpenStream(StreamFileHeader)
	if errors.Is(err, container.ErrStreamNotFound) {
		return nil, nil, &MalformedContainerError{Reason: "missing " + StreamFileHeader + " stream"}
	}
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	r := core.NewReader(rc)
	body, err := core.ReadBlock(r)
	if err != nil {
		return nil, nil, fmt.Errorf("stream %q: %w", StreamFileHeader, err)
	}
	header, err := params.Decode(body)
	if err != nil {
		return nil, nil, fmt.Errorf("stream %q: %w", StreamFileHeader, err)
	}

	count, err := core.ReadUint32(r)
	if err != nil {
		return nil, nil, fmt.Errorf("stream %q: %w", StreamFileHeader, err)
	}
	names := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		name, err := core.ReadStringBlock(r)
		if err != nil {
			return nil, nil, fmt.Errorf("stream %q, reference name %d: %w", StreamFileHeader, i, err)
		}
		names = append(names, name)
	}
	return header, names, nil
}

// readSectionKeys reads the optional manifest; absence means identity
// mapping for every component.
func readSectionKeys(st container.Storage) (map[string]string, error) {
	rc, err := st.OpenStream(StreamSectionKeys)
	if errors.Is(err, container.ErrStreamNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := core.NewReader(rc)
	body, err := core.ReadBlock(r)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", StreamSectionKeys, err)
	}
	manifest, err := params.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", StreamSectionKeys, err)
	}
	return sectionkeys.ReadManifest(manifest), nil
}

// readComponent reads one component storage: the mandatory Data stream
// plus any auxiliary streams, merged back onto the pins by pin index.
func readComponent(st container.Storage, name string, opts ReadOptions) (*records.Component, error) {
	rc, err := st.OpenStream(StreamData)
	if errors.Is(err, container.ErrStreamNotFound) {
		return nil, &MalformedContainerError{Reason: fmt.Sprintf("storage for %q has no %s stream", name, StreamData)}
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := core.NewReader(rc)
	var blocks []*params.Collection
	for {
		body, err := core.ReadBlock(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stream %q: %w", StreamData, err)
		}
		block, err := params.Decode(body)
		if err != nil {
			return nil, fmt.Errorf("stream %q, record %d: %w", StreamData, len(blocks), err)
		}
		blocks = append(blocks, block)
	}

	comp, pins, err := records.Rebuild(blocks, opts.StrictRecords)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", StreamData, err)
	}
	if comp.LibReference == "" {
		comp.LibReference = name
	}

	texts, err := readAuxStream(st, StreamPinTextData, len(pins))
	if err != nil {
		return nil, err
	}
	for idx, blob := range texts {
		pins[idx].TextData = blob
	}

	wide, err := readAuxParams(st, StreamPinWideText, len(pins))
	if err != nil {
		return nil, err
	}
	for idx, c := range wide {
		pins[idx].WideText = c
	}

	widths, err := readAuxParams(st, StreamPinSymbolLineWidth, len(pins))
	if err != nil {
		return nil, err
	}
	for idx, c := range widths {
		pins[idx].SymbolLineWidth = c
	}
	return comp, nil
}

// readAuxParams reads a parameter-valued auxiliary stream.
func readAuxParams(st container.Storage, stream string, pinCount int) (map[int]*params.Collection, error) {
	raw, err := readAuxStream(st, stream, pinCount)
	if err != nil {
		return nil, err
	}
	out := make(map[int]*params.Collection, len(raw))
	for idx, blob := range raw {
		c, err := params.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("stream %q, pin %d: %w", stream, idx, err)
		}
		out[idx] = c
	}
	return out, nil
}

// readAuxStream reads one optional auxiliary stream into a pin-indexed
// payload map. Absence yields an empty map. Entries must carry decimal
// pin indices within the component's pin count.
func readAuxStream(st container.Storage, stream string, pinCount int) (map[int][]byte, error) {
	rc, err := st.OpenStream(stream)
	if errors.Is(err, container.ErrStreamNotFound) {
		return map[int][]byte{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := core.NewReader(rc)
	body, err := core.ReadBlock(r)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", stream, err)
	}
	hdr, err := params.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", stream, err)
	}

	out := make(map[int][]byte)
	weight := hdr.Int("WEIGHT", 0)
	for i := 0; i < weight; i++ {
		key, payload, err := core.ReadCompressedStorage(r)
		if err != nil {
			return nil, fmt.Errorf("stream %q, entry %d: %w", stream, i, err)
		}
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, &MalformedContainerError{Reason: fmt.Sprintf("stream %q entry %d has non-numeric pin key %q", stream, i, key)}
		}
		if idx < 0 || idx >= pinCount {
			return nil, &MalformedContainerError{Reason: fmt.Sprintf("stream %q references pin %d of %d", stream, idx, pinCount)}
		}
		if _, dup := out[idx]; dup {
			return nil, &MalformedContainerError{Reason: fmt.Sprintf("stream %q has duplicate entry for pin %d", stream, idx)}
		}
		out[idx] = payload
	}
	return out, nil
}
