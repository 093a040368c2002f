package records

import "github.com/aaraminowicz/AltiumSharp/params"

// Component is the root primitive of a library entry. LibReference is its
// logical name; it is not guaranteed to be usable as a storage identifier,
// see the sectionkeys package.
type Component struct {
	Base
	LibReference string
	Description  string
}

// NewComponent returns an empty component.
func NewComponent() *Component {
	return &Component{}
}

// Type returns TypeComponent.
func (c *Component) Type() RecordType {
	return TypeComponent
}

// PinCount returns the number of pins in the component's tree, counted in
// the same depth-first order the serializer uses.
func (c *Component) PinCount() int {
	count := 0
	stack := []Primitive{c}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := p.(*Pin); ok {
			count++
		}
		children := p.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return count
}

// ExportParams appends the component's attributes.
func (c *Component) ExportParams(col *params.Collection) error {
	if err := c.exportBase(col); err != nil {
		return err
	}
	if err := col.AddText("LIBREFERENCE", c.LibReference, ""); err != nil {
		return err
	}
	return col.AddText("COMPONENTDESCRIPTION", c.Description, "")
}

// ImportParams reads the component's attributes.
func (c *Component) ImportParams(col *params.Collection) error {
	c.importBase(col)
	c.LibReference = col.Text("LIBREFERENCE", "")
	c.Description = col.Text("COMPONENTDESCRIPTION", "")
	return nil
}
