package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
)

// writeBytes is a test helper that commits data as the named stream.
func writeBytes(t *testing.T, st Storage, name string, data []byte) {
	t.Helper()
	err := st.WriteStream(name, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		t.Fatalf("WriteStream(%q) failed: %v", name, err)
	}
}

// readBytes is a test helper that reads a whole stream.
func readBytes(t *testing.T, st Storage, name string) []byte {
	t.Helper()
	rc, err := st.OpenStream(name)
	if err != nil {
		t.Fatalf("OpenStream(%q) failed: %v", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading %q failed: %v", name, err)
	}
	return data
}

// TestMemoryTree tests storage creation, stream round trip and ordered
// enumeration.
func TestMemoryTree(t *testing.T) {
	root := NewMemory()
	writeBytes(t, root, "FileHeader", []byte("header"))

	comp, err := root.Storage("NAND2")
	if err != nil {
		t.Fatalf("Storage failed: %v", err)
	}
	writeBytes(t, comp, "Data", []byte("records"))

	// get-or-create returns the same node
	again, err := root.Storage("NAND2")
	if err != nil {
		t.Fatal(err)
	}
	if got := readBytes(t, again, "Data"); !bytes.Equal(got, []byte("records")) {
		t.Errorf("Data = %q", got)
	}

	if _, err := root.OpenStorage("missing"); !errors.Is(err, ErrStorageNotFound) {
		t.Errorf("OpenStorage(missing) = %v, want ErrStorageNotFound", err)
	}
	if _, err := root.OpenStream("missing"); !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("OpenStream(missing) = %v, want ErrStreamNotFound", err)
	}

	if got := root.Storages(); len(got) != 1 || got[0] != "NAND2" {
		t.Errorf("Storages = %v", got)
	}
	if got := root.Streams(); len(got) != 1 || got[0] != "FileHeader" {
		t.Errorf("Streams = %v", got)
	}
}

// TestMemoryWriteStreamFailure tests that a failing body does not commit.
func TestMemoryWriteStreamFailure(t *testing.T) {
	root := NewMemory()
	writeBytes(t, root, "S", []byte("old"))

	boom := fmt.Errorf("body failed")
	err := root.WriteStream("S", func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WriteStream error = %v, want body error", err)
	}
	if got := readBytes(t, root, "S"); !bytes.Equal(got, []byte("old")) {
		t.Errorf("failed write replaced stream contents: %q", got)
	}
}

// TestZipRoundTrip tests SaveZip/LoadZip over a nested tree including an
// empty storage.
func TestZipRoundTrip(t *testing.T) {
	root := NewMemory()
	writeBytes(t, root, "FileHeader", []byte("hdr"))
	comp, _ := root.Storage("R1")
	writeBytes(t, comp, "Data", []byte("data bytes"))
	writeBytes(t, comp, "PinTextData", []byte{0x01, 0x02, 0x00, 0xFF})
	if _, err := root.Storage("Empty"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := SaveZip(&buf, root); err != nil {
		t.Fatalf("SaveZip failed: %v", err)
	}

	loaded, err := LoadZip(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("LoadZip failed: %v", err)
	}

	if got := readBytes(t, loaded, "FileHeader"); !bytes.Equal(got, []byte("hdr")) {
		t.Errorf("FileHeader = %q", got)
	}
	lc, err := loaded.OpenStorage("R1")
	if err != nil {
		t.Fatalf("OpenStorage(R1) failed: %v", err)
	}
	if got := readBytes(t, lc, "Data"); !bytes.Equal(got, []byte("data bytes")) {
		t.Errorf("Data = %q", got)
	}
	if got := readBytes(t, lc, "PinTextData"); !bytes.Equal(got, []byte{0x01, 0x02, 0x00, 0xFF}) {
		t.Errorf("PinTextData = %v", got)
	}
	if _, err := loaded.OpenStorage("Empty"); err != nil {
		t.Error("empty storage lost in zip round trip")
	}
}
