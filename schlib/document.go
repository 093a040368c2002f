package schlib

import (
	"github.com/aaraminowicz/AltiumSharp/params"
	"github.com/aaraminowicz/AltiumSharp/records"
)

// Stream and storage names of the file layout. These must match existing
// files exactly.
const (
	StreamFileHeader         = "FileHeader"
	StreamSectionKeys        = "SectionKeys"
	StreamData               = "Data"
	StreamPinTextData        = "PinTextData"
	StreamPinWideText        = "PinWideText"
	StreamPinSymbolLineWidth = "PinSymbolLineWidth"
	StreamStorage            = "Storage"
)

// HeaderSignature identifies the file format in the header parameters.
const HeaderSignature = "Protel for Windows - Schematic Library Editor Binary File Version 5.0"

// storageSignature is the HEADER value of the embedded-assets stream.
const storageSignature = "Schematic Library Binary Storage"

// Document is a complete component library: global header parameters, an
// ordered component list (order drives the header's reference-name list),
// and named binary assets not owned by any embedded image primitive.
// Assets carried by embedded images are pooled automatically on write and
// handed back to their images on read; Assets holds only the leftovers.
type Document struct {
	Header     *params.Collection
	Components []*records.Component
	Assets     map[string][]byte
}

// NewDocument returns an empty library with the format signature already
// present in its header.
func NewDocument() *Document {
	d := &Document{
		Header: params.New(),
		Assets: make(map[string][]byte),
	}
	// Header construction cannot fail for a valid constant key.
	_ = d.Header.Add("HEADER", HeaderSignature)
	return d
}

// AddComponent appends a component. Document order is significant.
func (d *Document) AddComponent(c *records.Component) {
	d.Components = append(d.Components, c)
}

// ComponentByName returns the first component with the given reference
// name, or nil.
func (d *Document) ComponentByName(libReference string) *records.Component {
	for _, c := range d.Components {
		if c.LibReference == libReference {
			return c
		}
	}
	return nil
}
