package schlib

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/aaraminowicz/AltiumSharp/container"
	"github.com/aaraminowicz/AltiumSharp/core"
	"github.com/aaraminowicz/AltiumSharp/params"
	"github.com/aaraminowicz/AltiumSharp/records"
	"github.com/aaraminowicz/AltiumSharp/sectionkeys"
)

// Write serializes a document into the container. It is a pure
// transformation of the document: the document is not mutated, and each
// call starts from a fresh section-key resolver.
//
// A failure mid-write can leave the container partially written; callers
// needing atomicity should write into a staging container (for example a
// fresh container.Memory) and swap it into place themselves.
func Write(st container.Storage, doc *Document) error {
	resolver := sectionkeys.NewResolver()
	keys := make([]string, len(doc.Components))
	seen := make(map[string]bool, len(doc.Components))
	for i, comp := range doc.Components {
		if seen[comp.LibReference] {
			return fmt.Errorf("duplicate component reference name %q", comp.LibReference)
		}
		seen[comp.LibReference] = true

		key, err := resolver.Resolve(comp.LibReference)
		if err != nil {
			return fmt.Errorf("component %q: %w", comp.LibReference, err)
		}
		keys[i] = key
	}

	if err := writeFileHeader(st, doc); err != nil {
		return err
	}
	if err := writeSectionKeys(st, resolver); err != nil {
		return err
	}

	pool := newAssetPool()
	for i, comp := range doc.Components {
		if err := writeComponent(st, keys[i], comp); err != nil {
			return fmt.Errorf("component %q: %w", comp.LibReference, err)
		}
		if err := collectAssets(comp, pool); err != nil {
			return fmt.Errorf("component %q: %w", comp.LibReference, err)
		}
	}

	return writeAssets(st, pool, doc.Assets)
}

// writeFileHeader emits the header parameters, the component count and
// the ordered reference-name list. The format signature is supplied when
// the caller's header lacks one, on a copy so the document stays
// untouched.
func writeFileHeader(st container.Storage, doc *Document) error {
	header := doc.Header
	if header == nil {
		header = params.New()
	}
	if !header.Has("HEADER") {
		header = header.Clone()
		if err := header.Add("HEADER", HeaderSignature); err != nil {
			return err
		}
	}

	return st.WriteStream(StreamFileHeader, func(w io.Writer) error {
		data, err := header.Encode()
		if err != nil {
			return fmt.Errorf("stream %q: %w", StreamFileHeader, err)
		}
		err = core.WriteBlock(w, func(bw io.Writer) error {
			_, werr := bw.Write(data)
			return werr
		})
		if err != nil {
			return err
		}
		if err := core.WriteUint32(w, uint32(len(doc.Components))); err != nil {
			return err
		}
		for _, comp := range doc.Components {
			if err := core.WriteStringBlock(w, comp.LibReference); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeSectionKeys emits the manifest stream when any component deviates
// from identity mapping.
func writeSectionKeys(st container.Storage, resolver *sectionkeys.Resolver) error {
	if len(resolver.Mappings()) == 0 {
		return nil
	}
	manifest, err := resolver.Manifest()
	if err != nil {
		return err
	}
	return st.WriteStream(StreamSectionKeys, func(w io.Writer) error {
		data, err := manifest.Encode()
		if err != nil {
			return fmt.Errorf("stream %q: %w", StreamSectionKeys, err)
		}
		return core.WriteBlock(w, func(bw io.Writer) error {
			_, werr := bw.Write(data)
			return werr
		})
	})
}

// writeComponent emits one component's storage: the Data stream and any
// non-empty auxiliary streams.
func writeComponent(root container.Storage, key string, comp *records.Component) error {
	blocks, aux, err := records.Flatten(comp)
	if err != nil {
		return err
	}

	sub, err := root.Storage(key)
	if err != nil {
		return err
	}

	err = sub.WriteStream(StreamData, func(w io.Writer) error {
		for i, block := range blocks {
			data, err := block.Encode()
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			err = core.WriteBlock(w, func(bw io.Writer) error {
				_, werr := bw.Write(data)
				return werr
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("stream %q: %w", StreamData, err)
	}

	if err := writeAuxStream(sub, StreamPinTextData, aux.TextData); err != nil {
		return err
	}
	if err := writeAuxParams(sub, StreamPinWideText, aux.WideText); err != nil {
		return err
	}
	return writeAuxParams(sub, StreamPinSymbolLineWidth, aux.SymbolLineWidth)
}

// writeAuxParams encodes parameter-valued auxiliary payloads and emits
// them as an auxiliary stream.
func writeAuxParams(st container.Storage, name string, payloads map[int]*params.Collection) error {
	if len(payloads) == 0 {
		return nil
	}
	raw := make(map[int][]byte, len(payloads))
	for idx, c := range payloads {
		data, err := c.Encode()
		if err != nil {
			return fmt.Errorf("stream %q, pin %d: %w", name, idx, err)
		}
		raw[idx] = data
	}
	return writeAuxStream(st, name, raw)
}

// writeAuxStream emits one auxiliary stream: a HEADER/WEIGHT parameter
// block followed by one compressed sub-block per pin index, in index
// order. The payloads are independent, so their compression fans out to
// workers and is rejoined before the stream is committed; emission itself
// stays sequential.
func writeAuxStream(st container.Storage, name string, payloads map[int][]byte) error {
	if len(payloads) == 0 {
		return nil
	}

	indices := make([]int, 0, len(payloads))
	for idx := range payloads {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	type record struct {
		key         string
		originalLen int
		compressed  []byte
	}
	compressed := make([]record, len(indices))
	var g errgroup.Group
	for j, idx := range indices {
		j, idx := j, idx
		payload := payloads[idx]
		g.Go(func() error {
			data, err := core.Compress(payload)
			if err != nil {
				return fmt.Errorf("pin %d: %w", idx, err)
			}
			compressed[j] = record{key: strconv.Itoa(idx), originalLen: len(payload), compressed: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("stream %q: %w", name, err)
	}

	err := st.WriteStream(name, func(w io.Writer) error {
		hdr := params.New()
		if err := hdr.Add("HEADER", name); err != nil {
			return err
		}
		if err := hdr.AddInt("WEIGHT", len(compressed), -1); err != nil {
			return err
		}
		data, err := hdr.Encode()
		if err != nil {
			return err
		}
		err = core.WriteBlock(w, func(bw io.Writer) error {
			_, werr := bw.Write(data)
			return werr
		})
		if err != nil {
			return err
		}
		for _, rec := range compressed {
			if err := core.WriteCompressedRecord(w, rec.key, rec.originalLen, rec.compressed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("stream %q: %w", name, err)
	}
	return nil
}
