package schlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/aaraminowicz/AltiumSharp/container"
	"github.com/aaraminowicz/AltiumSharp/core"
	"github.com/aaraminowicz/AltiumSharp/params"
	"github.com/aaraminowicz/AltiumSharp/records"
)

// assetPool collects embedded blobs for the Storage stream, deduplicating
// by content: the same name carrying equal bytes any number of times is
// stored once. The same name with different bytes is a document error.
type assetPool struct {
	names  []string
	data   map[string][]byte
	hashes map[string]uint64
}

func newAssetPool() *assetPool {
	return &assetPool{
		data:   make(map[string][]byte),
		hashes: make(map[string]uint64),
	}
}

func (p *assetPool) add(name string, blob []byte) error {
	sum := xxhash.Sum64(blob)
	if existing, ok := p.data[name]; ok {
		if p.hashes[name] == sum && bytes.Equal(existing, blob) {
			return nil
		}
		return fmt.Errorf("asset %q has conflicting contents", name)
	}
	p.names = append(p.names, name)
	p.data[name] = blob
	p.hashes[name] = sum
	return nil
}

func (p *assetPool) empty() bool {
	return len(p.names) == 0
}

// collectAssets walks a component's primitives and pools the blobs of
// embedded images.
func collectAssets(comp *records.Component, pool *assetPool) error {
	stack := []records.Primitive{comp}
	for len(stack) > 0 {
		prim := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if img, ok := prim.(*records.Image); ok && img.Embedded && img.Data != nil {
			if img.Filename == "" {
				return errors.New("embedded image has no filename")
			}
			if err := pool.add(img.Filename, img.Data); err != nil {
				return err
			}
		}
		children := prim.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}

// writeAssets emits the Storage stream: a HEADER/WEIGHT parameter block
// followed by one compressed sub-block per asset. Caller-supplied orphan
// assets are appended in sorted name order for deterministic output.
func writeAssets(st container.Storage, pool *assetPool, orphans map[string][]byte) error {
	orphanNames := make([]string, 0, len(orphans))
	for name := range orphans {
		orphanNames = append(orphanNames, name)
	}
	sort.Strings(orphanNames)
	for _, name := range orphanNames {
		if err := pool.add(name, orphans[name]); err != nil {
			return err
		}
	}

	if pool.empty() {
		return nil
	}
	return st.WriteStream(StreamStorage, func(w io.Writer) error {
		hdr := params.New()
		if err := hdr.Add("HEADER", storageSignature); err != nil {
			return err
		}
		if err := hdr.AddInt("WEIGHT", len(pool.names), -1); err != nil {
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
		for _, name := range pool.names {
			if err := core.WriteCompressedStorage(w, name, pool.data[name]); err != nil {
				return fmt.Errorf("asset %q: %w", name, err)
			}
		}
		return nil
	})
}

// readAssets reads the Storage stream into a name-to-blob map. An absent
// stream is an empty pool, never an error.
func readAssets(st container.Storage) (map[string][]byte, error) {
	rc, err := st.OpenStream(StreamStorage)
	if errors.Is(err, container.ErrStreamNotFound) {
		return make(map[string][]byte), nil
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := core.NewReader(rc)
	hdrBytes, err := core.ReadBlock(r)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", StreamStorage, err)
	}
	hdr, err := params.Decode(hdrBytes)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", StreamStorage, err)
	}

	out := make(map[string][]byte)
	weight := hdr.Int("WEIGHT", 0)
	for i := 0; i < weight; i++ {
		name, blob, err := core.ReadCompressedStorage(r)
		if err != nil {
			return nil, fmt.Errorf("stream %q, asset %d: %w", StreamStorage, i, err)
		}
		if _, ok := out[name]; ok {
			return nil, &MalformedContainerError{Reason: fmt.Sprintf("duplicate asset %q in %s stream", name, StreamStorage)}
		}
		out[name] = blob
	}
	return out, nil
}

// attachAssets hands pooled blobs back to the embedded images that
// reference them and returns the set of claimed names.
func attachAssets(comps []*records.Component, assets map[string][]byte) map[string]bool {
	claimed := make(map[string]bool)
	for _, comp := range comps {
		stack := []records.Primitive{comp}
		for len(stack) > 0 {
			prim := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if img, ok := prim.(*records.Image); ok && img.Embedded {
				if blob, ok := assets[img.Filename]; ok {
					img.Data = blob
					claimed[img.Filename] = true
				}
			}
			children := prim.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
	return claimed
}
