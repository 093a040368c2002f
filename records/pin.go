package records

import "github.com/aaraminowicz/AltiumSharp/params"

// Electrical types for pins.
const (
	PinInput         = 0
	PinIO            = 1
	PinOutput        = 2
	PinOpenCollector = 3
	PinPassive       = 4
	PinHiZ           = 5
	PinOpenEmitter   = 6
	PinPower         = 7
)

// Pin is a connection point on a component. Besides its inline attributes
// it may carry three optional out-of-line payloads, stored in auxiliary
// streams keyed by the pin's sequential index among the component's pins:
// WideText (localized name/designator overrides), TextData (an opaque
// blob) and SymbolLineWidth (per-symbol line width overrides). A nil
// payload means absent and emits nothing.
type Pin struct {
	Base
	Name           string
	Designator     string
	Length         int
	Orientation    int // degrees counterclockwise: 0, 90, 180, 270
	Electrical     int
	ShowName       bool
	ShowDesignator bool

	WideText        *params.Collection
	TextData        []byte
	SymbolLineWidth *params.Collection
}

const defaultPinLength = 30

// NewPin returns a pin with the format's default attributes: visible name
// and designator, passive electrical type, default length.
func NewPin() *Pin {
	return &Pin{
		Length:         defaultPinLength,
		Electrical:     PinPassive,
		ShowName:       true,
		ShowDesignator: true,
	}
}

// Type returns TypePin.
func (p *Pin) Type() RecordType {
	return TypePin
}

// ExportParams appends the pin's inline attributes. The out-of-line
// payloads are not exported here; the tree flattener collects them for
// the auxiliary streams.
func (p *Pin) ExportParams(c *params.Collection) error {
	if err := p.exportBase(c); err != nil {
		return err
	}
	if err := c.AddText("NAME", p.Name, ""); err != nil {
		return err
	}
	if err := c.AddText("DESIGNATOR", p.Designator, ""); err != nil {
		return err
	}
	if err := c.AddInt("PINLENGTH", p.Length, defaultPinLength); err != nil {
		return err
	}
	if err := c.AddInt("ORIENTATION", p.Orientation, 0); err != nil {
		return err
	}
	if err := c.AddInt("ELECTRICAL", p.Electrical, PinPassive); err != nil {
		return err
	}
	if err := c.AddBool("SHOWNAME", p.ShowName, true); err != nil {
		return err
	}
	return c.AddBool("SHOWDESIGNATOR", p.ShowDesignator, true)
}

// ImportParams reads the pin's inline attributes.
func (p *Pin) ImportParams(c *params.Collection) error {
	p.importBase(c)
	p.Name = c.Text("NAME", "")
	p.Designator = c.Text("DESIGNATOR", "")
	p.Length = c.Int("PINLENGTH", defaultPinLength)
	p.Orientation = c.Int("ORIENTATION", 0)
	p.Electrical = c.Int("ELECTRICAL", PinPassive)
	p.ShowName = c.Bool("SHOWNAME", true)
	p.ShowDesignator = c.Bool("SHOWDESIGNATOR", true)
	return nil
}
