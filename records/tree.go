package records

import (
	"fmt"
	"strconv"

	"github.com/aaraminowicz/AltiumSharp/params"
)

// PinAux holds the out-of-line pin payloads collected while flattening one
// component, keyed by sequential pin index. Each map is nil-safe to index;
// an empty map means the corresponding auxiliary stream is absent.
type PinAux struct {
	TextData        map[int][]byte
	WideText        map[int]*params.Collection
	SymbolLineWidth map[int]*params.Collection
}

func newPinAux() *PinAux {
	return &PinAux{
		TextData:        make(map[int][]byte),
		WideText:        make(map[int]*params.Collection),
		SymbolLineWidth: make(map[int]*params.Collection),
	}
}

// Empty reports whether no pin carried any out-of-line payload.
func (a *PinAux) Empty() bool {
	return len(a.TextData) == 0 && len(a.WideText) == 0 && len(a.SymbolLineWidth) == 0
}

// traversal carries the mutable counters threaded through the flattening:
// the next flat index is implicit in the output length, the next pin index
// is explicit here.
type traversal struct {
	out     []*params.Collection
	aux     *PinAux
	nextPin int
}

type visit struct {
	prim  Primitive
	owner int // flat index of the owner; -1 for the root
}

// Flatten serializes a component's primitive tree into the flat record
// sequence: depth-first, parents before children, siblings in child-list
// order. Each record carries the RECORD discriminant and, for non-root
// primitives, the OWNERINDEX of its already-emitted owner. Pin payloads
// present on visited pins are collected into the returned PinAux keyed by
// the pin's sequential index.
func Flatten(root *Component) ([]*params.Collection, *PinAux, error) {
	t := &traversal{aux: newPinAux()}
	stack := []visit{{prim: root, owner: -1}}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		index := len(t.out)
		block := params.New()
		if err := block.Add("RECORD", strconv.Itoa(int(v.prim.Type()))); err != nil {
			return nil, nil, err
		}
		if v.owner >= 0 {
			// Owner index 0 is the root and the format's implicit
			// default, so it is omitted like any default-valued field.
			if err := block.AddInt("OWNERINDEX", v.owner, 0); err != nil {
				return nil, nil, err
			}
		}
		if err := v.prim.ExportParams(block); err != nil {
			return nil, nil, fmt.Errorf("exporting primitive %d (record %d): %w", index, v.prim.Type(), err)
		}
		t.out = append(t.out, block)

		if pin, ok := v.prim.(*Pin); ok {
			pinIndex := t.nextPin
			t.nextPin++
			if pin.TextData != nil {
				t.aux.TextData[pinIndex] = pin.TextData
			}
			if pin.WideText != nil {
				t.aux.WideText[pinIndex] = pin.WideText
			}
			if pin.SymbolLineWidth != nil {
				t.aux.SymbolLineWidth[pinIndex] = pin.SymbolLineWidth
			}
		}

		children := v.prim.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, visit{prim: children[i], owner: index})
		}
	}
	return t.out, t.aux, nil
}

// Rebuild reconstructs a component from its flat record sequence. Records
// are materialized in order; each non-root record attaches to the
// primitive at its owner index, which must already exist. Pins are
// returned in sequential pin-index order so callers can merge auxiliary
// streams back onto them.
//
// A record tag outside the known variant set becomes an Unknown primitive
// unless strict is set, in which case the whole component fails with
// *UnknownRecordError.
func Rebuild(blocks []*params.Collection, strict bool) (*Component, []*Pin, error) {
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("component has no records")
	}

	prims := make([]Primitive, 0, len(blocks))
	var pins []*Pin

	for i, block := range blocks {
		tag := RecordType(block.Int("RECORD", 0))

		var prim Primitive
		if i == 0 {
			if tag != TypeComponent {
				return nil, nil, fmt.Errorf("record 0 has type %d, want component (%d)", tag, TypeComponent)
			}
			prim = NewComponent()
		} else {
			var ok bool
			prim, ok = New(tag)
			if !ok {
				if strict {
					return nil, nil, &UnknownRecordError{Index: i, Tag: tag}
				}
				prim = &Unknown{Tag: tag}
			}
		}

		if err := prim.ImportParams(block); err != nil {
			return nil, nil, fmt.Errorf("importing primitive %d (record %d): %w", i, tag, err)
		}

		if i > 0 {
			owner := block.Int("OWNERINDEX", 0)
			if owner < 0 || owner >= i {
				return nil, nil, &DanglingOwnerError{Index: i, Owner: owner}
			}
			prims[owner].AddChild(prim)
		}
		prims = append(prims, prim)

		if pin, ok := prim.(*Pin); ok {
			pins = append(pins, pin)
		}
	}
	return prims[0].(*Component), pins, nil
}
