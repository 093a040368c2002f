package container

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strings"
)

// SaveZip serializes a storage tree into a zip archive. Streams become
// entries named by their storage path; empty storages become directory
// entries so they survive the round trip.
func SaveZip(w io.Writer, st Storage) error {
	zw := zip.NewWriter(w)
	if err := saveZipNode(zw, st, ""); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func saveZipNode(zw *zip.Writer, st Storage, prefix string) error {
	streams := st.Streams()
	for _, name := range streams {
		rc, err := st.OpenStream(name)
		if err != nil {
			return fmt.Errorf("opening stream %q: %w", prefix+name, err)
		}
		ew, err := zw.Create(prefix + name)
		if err != nil {
			rc.Close()
			return err
		}
		if _, err := io.Copy(ew, rc); err != nil {
			rc.Close()
			return fmt.Errorf("writing entry %q: %w", prefix+name, err)
		}
		if err := rc.Close(); err != nil {
			return err
		}
	}

	children := st.Storages()
	for _, name := range children {
		child, err := st.OpenStorage(name)
		if err != nil {
			return err
		}
		childPrefix := prefix + name + "/"
		if len(child.Streams()) == 0 && len(child.Storages()) == 0 {
			if _, err := zw.Create(childPrefix); err != nil {
				return err
			}
			continue
		}
		if err := saveZipNode(zw, child, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

// LoadZip reads a zip archive produced by SaveZip back into a Memory
// storage tree. Entries are applied in a stable path order so enumeration
// is deterministic regardless of archive layout.
func LoadZip(r io.ReaderAt, size int64) (*Memory, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening zip container: %w", err)
	}

	names := make([]string, 0, len(zr.File))
	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
		byName[f.Name] = f
	}
	sort.Strings(names)

	root := NewMemory()
	for _, name := range names {
		f := byName[name]
		node := root
		parts := strings.Split(strings.TrimSuffix(name, "/"), "/")
		isDir := strings.HasSuffix(name, "/")

		last := len(parts) - 1
		for i, part := range parts {
			if i == last && !isDir {
				if err := loadZipStream(node, part, f); err != nil {
					return nil, err
				}
				break
			}
			child, err := node.Storage(part)
			if err != nil {
				return nil, err
			}
			node = child.(*Memory)
		}
	}
	return root, nil
}

func loadZipStream(node *Memory, name string, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry %q: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("reading entry %q: %w", f.Name, err)
	}
	return node.WriteStream(name, func(w io.Writer) error {
		_, werr := w.Write(data)
		return werr
	})
}
