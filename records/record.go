package records

import (
	"fmt"

	"github.com/aaraminowicz/AltiumSharp/params"
)

// RecordType is a primitive variant's fixed numeric discriminant. The
// values are part of the wire contract.
type RecordType int

const (
	TypeComponent RecordType = 1
	TypePin       RecordType = 2
	TypeLabel     RecordType = 4
	TypeBezier    RecordType = 5
	TypePolyline  RecordType = 6
	TypePolygon   RecordType = 7
	TypeEllipse   RecordType = 8
	TypeArc       RecordType = 12
	TypeLine      RecordType = 13
	TypeRectangle RecordType = 14
	TypeImage     RecordType = 30
)

// Primitive is one schematic element in a component's tree. Variants
// export their attributes into a parameter collection and import them
// back; both directions must agree on each field's default so omitted
// parameters round trip.
type Primitive interface {
	// Type returns the variant's record discriminant.
	Type() RecordType
	// Children returns the primitive's children in order.
	Children() []Primitive
	// AddChild appends a child primitive.
	AddChild(p Primitive)
	// ExportParams appends the variant's attributes to c.
	ExportParams(c *params.Collection) error
	// ImportParams reads the variant's attributes from c.
	ImportParams(c *params.Collection) error
}

// Point is a schematic coordinate pair.
type Point struct {
	X int
	Y int
}

// Base holds the attributes shared by every primitive variant plus the
// child list. Variants embed it.
type Base struct {
	Location  Point
	Color     int
	LineWidth int

	children []Primitive
}

// Children returns the child primitives in insertion order.
func (b *Base) Children() []Primitive {
	return b.children
}

// AddChild appends a child primitive.
func (b *Base) AddChild(p Primitive) {
	b.children = append(b.children, p)
}

func (b *Base) exportBase(c *params.Collection) error {
	if err := c.AddInt("LOCATION.X", b.Location.X, 0); err != nil {
		return err
	}
	if err := c.AddInt("LOCATION.Y", b.Location.Y, 0); err != nil {
		return err
	}
	if err := c.AddInt("COLOR", b.Color, 0); err != nil {
		return err
	}
	return c.AddInt("LINEWIDTH", b.LineWidth, 0)
}

func (b *Base) importBase(c *params.Collection) {
	b.Location.X = c.Int("LOCATION.X", 0)
	b.Location.Y = c.Int("LOCATION.Y", 0)
	b.Color = c.Int("COLOR", 0)
	b.LineWidth = c.Int("LINEWIDTH", 0)
}

// constructors maps each known discriminant to a constructor returning the
// variant with its default attributes initialized. Decoding dispatches
// through this table.
var constructors = map[RecordType]func() Primitive{
	TypeComponent: func() Primitive { return NewComponent() },
	TypePin:       func() Primitive { return NewPin() },
	TypeLabel:     func() Primitive { return NewLabel() },
	TypeBezier:    func() Primitive { return &Bezier{} },
	TypePolyline:  func() Primitive { return &Polyline{} },
	TypePolygon:   func() Primitive { return &Polygon{} },
	TypeEllipse:   func() Primitive { return &Ellipse{} },
	TypeArc:       func() Primitive { return &Arc{} },
	TypeLine:      func() Primitive { return &Line{} },
	TypeRectangle: func() Primitive { return &Rectangle{} },
	TypeImage:     func() Primitive { return &Image{} },
}

// New returns a default-initialized primitive for a known record type.
func New(t RecordType) (Primitive, bool) {
	ctor, ok := constructors[t]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// exportVertices writes a vertex list as LOCATIONCOUNT plus 1-based Xi/Yi
// coordinate parameters.
func exportVertices(c *params.Collection, pts []Point) error {
	if err := c.AddInt("LOCATIONCOUNT", len(pts), 0); err != nil {
		return err
	}
	for i, p := range pts {
		if err := c.AddInt(fmt.Sprintf("X%d", i+1), p.X, 0); err != nil {
			return err
		}
		if err := c.AddInt(fmt.Sprintf("Y%d", i+1), p.Y, 0); err != nil {
			return err
		}
	}
	return nil
}

func importVertices(c *params.Collection) []Point {
	n := c.Int("LOCATIONCOUNT", 0)
	if n <= 0 {
		return nil
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i].X = c.Int(fmt.Sprintf("X%d", i+1), 0)
		pts[i].Y = c.Int(fmt.Sprintf("Y%d", i+1), 0)
	}
	return pts
}
