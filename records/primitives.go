package records

import (
	"strings"

	"github.com/aaraminowicz/AltiumSharp/params"
)

// Label is a free-text annotation.
type Label struct {
	Base
	Text          string
	FontID        int
	Justification int
}

const defaultFontID = 1

// NewLabel returns a label using the default font.
func NewLabel() *Label {
	return &Label{FontID: defaultFontID}
}

// Type returns TypeLabel.
func (l *Label) Type() RecordType {
	return TypeLabel
}

func (l *Label) ExportParams(c *params.Collection) error {
	if err := l.exportBase(c); err != nil {
		return err
	}
	if err := c.AddText("TEXT", l.Text, ""); err != nil {
		return err
	}
	if err := c.AddInt("FONTID", l.FontID, defaultFontID); err != nil {
		return err
	}
	return c.AddInt("JUSTIFICATION", l.Justification, 0)
}

func (l *Label) ImportParams(c *params.Collection) error {
	l.importBase(c)
	l.Text = c.Text("TEXT", "")
	l.FontID = c.Int("FONTID", defaultFontID)
	l.Justification = c.Int("JUSTIFICATION", 0)
	return nil
}

// Bezier is a cubic curve through a vertex list.
type Bezier struct {
	Base
	Points []Point
}

// Type returns TypeBezier.
func (b *Bezier) Type() RecordType {
	return TypeBezier
}

func (b *Bezier) ExportParams(c *params.Collection) error {
	if err := b.exportBase(c); err != nil {
		return err
	}
	return exportVertices(c, b.Points)
}

func (b *Bezier) ImportParams(c *params.Collection) error {
	b.importBase(c)
	b.Points = importVertices(c)
	return nil
}

// Polyline is an open multi-segment line.
type Polyline struct {
	Base
	Points []Point
}

// Type returns TypePolyline.
func (p *Polyline) Type() RecordType {
	return TypePolyline
}

func (p *Polyline) ExportParams(c *params.Collection) error {
	if err := p.exportBase(c); err != nil {
		return err
	}
	return exportVertices(c, p.Points)
}

func (p *Polyline) ImportParams(c *params.Collection) error {
	p.importBase(c)
	p.Points = importVertices(c)
	return nil
}

// Polygon is a closed, optionally filled vertex list.
type Polygon struct {
	Base
	Points    []Point
	AreaColor int
	IsSolid   bool
}

// Type returns TypePolygon.
func (p *Polygon) Type() RecordType {
	return TypePolygon
}

func (p *Polygon) ExportParams(c *params.Collection) error {
	if err := p.exportBase(c); err != nil {
		return err
	}
	if err := exportVertices(c, p.Points); err != nil {
		return err
	}
	if err := c.AddInt("AREACOLOR", p.AreaColor, 0); err != nil {
		return err
	}
	return c.AddBool("ISSOLID", p.IsSolid, false)
}

func (p *Polygon) ImportParams(c *params.Collection) error {
	p.importBase(c)
	p.Points = importVertices(c)
	p.AreaColor = c.Int("AREACOLOR", 0)
	p.IsSolid = c.Bool("ISSOLID", false)
	return nil
}

// Ellipse is centered at the base location.
type Ellipse struct {
	Base
	Radius          int
	SecondaryRadius int
	AreaColor       int
	IsSolid         bool
}

// Type returns TypeEllipse.
func (e *Ellipse) Type() RecordType {
	return TypeEllipse
}

func (e *Ellipse) ExportParams(c *params.Collection) error {
	if err := e.exportBase(c); err != nil {
		return err
	}
	if err := c.AddInt("RADIUS", e.Radius, 0); err != nil {
		return err
	}
	if err := c.AddInt("SECONDARYRADIUS", e.SecondaryRadius, 0); err != nil {
		return err
	}
	if err := c.AddInt("AREACOLOR", e.AreaColor, 0); err != nil {
		return err
	}
	return c.AddBool("ISSOLID", e.IsSolid, false)
}

func (e *Ellipse) ImportParams(c *params.Collection) error {
	e.importBase(c)
	e.Radius = c.Int("RADIUS", 0)
	e.SecondaryRadius = c.Int("SECONDARYRADIUS", 0)
	e.AreaColor = c.Int("AREACOLOR", 0)
	e.IsSolid = c.Bool("ISSOLID", false)
	return nil
}

// Arc is a circular arc centered at the base location. Angles are degrees
// counterclockwise from the positive X axis.
type Arc struct {
	Base
	Radius     int
	StartAngle float64
	EndAngle   float64
}

// Type returns TypeArc.
func (a *Arc) Type() RecordType {
	return TypeArc
}

func (a *Arc) ExportParams(c *params.Collection) error {
	if err := a.exportBase(c); err != nil {
		return err
	}
	if err := c.AddInt("RADIUS", a.Radius, 0); err != nil {
		return err
	}
	if err := c.AddFloat("STARTANGLE", a.StartAngle, 0); err != nil {
		return err
	}
	return c.AddFloat("ENDANGLE", a.EndAngle, 0)
}

func (a *Arc) ImportParams(c *params.Collection) error {
	a.importBase(c)
	a.Radius = c.Int("RADIUS", 0)
	a.StartAngle = c.Float("STARTANGLE", 0)
	a.EndAngle = c.Float("ENDANGLE", 0)
	return nil
}

// Line is a straight segment from the base location to Corner.
type Line struct {
	Base
	Corner Point
}

// Type returns TypeLine.
func (l *Line) Type() RecordType {
	return TypeLine
}

func (l *Line) ExportParams(c *params.Collection) error {
	if err := l.exportBase(c); err != nil {
		return err
	}
	if err := c.AddInt("CORNER.X", l.Corner.X, 0); err != nil {
		return err
	}
	return c.AddInt("CORNER.Y", l.Corner.Y, 0)
}

func (l *Line) ImportParams(c *params.Collection) error {
	l.importBase(c)
	l.Corner.X = c.Int("CORNER.X", 0)
	l.Corner.Y = c.Int("CORNER.Y", 0)
	return nil
}

// Rectangle spans the base location and Corner.
type Rectangle struct {
	Base
	Corner      Point
	AreaColor   int
	IsSolid     bool
	Transparent bool
}

// Type returns TypeRectangle.
func (r *Rectangle) Type() RecordType {
	return TypeRectangle
}

func (r *Rectangle) ExportParams(c *params.Collection) error {
	if err := r.exportBase(c); err != nil {
		return err
	}
	if err := c.AddInt("CORNER.X", r.Corner.X, 0); err != nil {
		return err
	}
	if err := c.AddInt("CORNER.Y", r.Corner.Y, 0); err != nil {
		return err
	}
	if err := c.AddInt("AREACOLOR", r.AreaColor, 0); err != nil {
		return err
	}
	if err := c.AddBool("ISSOLID", r.IsSolid, false); err != nil {
		return err
	}
	return c.AddBool("TRANSPARENT", r.Transparent, false)
}

func (r *Rectangle) ImportParams(c *params.Collection) error {
	r.importBase(c)
	r.Corner.X = c.Int("CORNER.X", 0)
	r.Corner.Y = c.Int("CORNER.Y", 0)
	r.AreaColor = c.Int("AREACOLOR", 0)
	r.IsSolid = c.Bool("ISSOLID", false)
	r.Transparent = c.Bool("TRANSPARENT", false)
	return nil
}

// Image places an embedded or externally referenced picture. When Embedded
// is set, Data holds the blob and the document writer pools it into the
// shared assets area under Filename; image bytes are opaque to the codec.
type Image struct {
	Base
	Corner     Point
	Filename   string
	Embedded   bool
	KeepAspect bool

	// Data is the embedded blob; nil for external references. It is not
	// an exported parameter, the assets area carries it.
	Data []byte
}

// Type returns TypeImage.
func (m *Image) Type() RecordType {
	return TypeImage
}

func (m *Image) ExportParams(c *params.Collection) error {
	if err := m.exportBase(c); err != nil {
		return err
	}
	if err := c.AddInt("CORNER.X", m.Corner.X, 0); err != nil {
		return err
	}
	if err := c.AddInt("CORNER.Y", m.Corner.Y, 0); err != nil {
		return err
	}
	if err := c.AddText("FILENAME", m.Filename, ""); err != nil {
		return err
	}
	if err := c.AddBool("EMBEDIMAGE", m.Embedded, false); err != nil {
		return err
	}
	return c.AddBool("KEEPASPECT", m.KeepAspect, false)
}

func (m *Image) ImportParams(c *params.Collection) error {
	m.importBase(c)
	m.Corner.X = c.Int("CORNER.X", 0)
	m.Corner.Y = c.Int("CORNER.Y", 0)
	m.Filename = c.Text("FILENAME", "")
	m.Embedded = c.Bool("EMBEDIMAGE", false)
	m.KeepAspect = c.Bool("KEEPASPECT", false)
	return nil
}

// Unknown preserves a record whose type is outside the known variant set.
// Its parameters are kept verbatim (minus the positional OWNERINDEX) so
// re-emission is lossless.
type Unknown struct {
	Base
	Tag    RecordType
	Fields *params.Collection
}

// Type returns the preserved discriminant.
func (u *Unknown) Type() RecordType {
	return u.Tag
}

func (u *Unknown) ExportParams(c *params.Collection) error {
	if u.Fields == nil {
		return nil
	}
	for _, p := range u.Fields.Pairs() {
		if err := c.Add(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (u *Unknown) ImportParams(c *params.Collection) error {
	u.Fields = params.New()
	for _, p := range c.Pairs() {
		switch strings.ToUpper(p.Key) {
		case "RECORD", "OWNERINDEX":
			continue
		}
		if err := u.Fields.Add(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}
