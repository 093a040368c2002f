package records

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aaraminowicz/AltiumSharp/params"
)

// buildNested returns a component with three levels of nesting and
// multiple siblings per level:
//
//	component
//	├── rectangle
//	│   ├── pin "1"
//	│   │   └── label "inner"
//	│   └── pin "2"
//	├── polyline
//	└── label "outer"
func buildNested() *Component {
	comp := NewComponent()
	comp.LibReference = "NAND2"

	rect := &Rectangle{Corner: Point{X: 100, Y: 80}, IsSolid: true}
	pin1 := NewPin()
	pin1.Name = "A"
	pin1.Designator = "1"
	inner := NewLabel()
	inner.Text = "inner"
	pin1.AddChild(inner)
	pin2 := NewPin()
	pin2.Name = "B"
	pin2.Designator = "2"
	rect.AddChild(pin1)
	rect.AddChild(pin2)

	poly := &Polyline{Points: []Point{{0, 0}, {10, 10}, {20, 0}}}
	outer := NewLabel()
	outer.Text = "outer"

	comp.AddChild(rect)
	comp.AddChild(poly)
	comp.AddChild(outer)
	return comp
}

// TestFlattenOrderAndOwners tests that flattening is depth-first with
// parents before children and correct owner indices.
func TestFlattenOrderAndOwners(t *testing.T) {
	blocks, _, err := Flatten(buildNested())
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	wantTypes := []RecordType{TypeComponent, TypeRectangle, TypePin, TypeLabel, TypePin, TypePolyline, TypeLabel}
	wantOwners := []int{0, 0, 1, 2, 1, 0, 0} // index 0's entry unused
	if len(blocks) != len(wantTypes) {
		t.Fatalf("flattened %d records, want %d", len(blocks), len(wantTypes))
	}
	for i, b := range blocks {
		if got := RecordType(b.Int("RECORD", 0)); got != wantTypes[i] {
			t.Errorf("record %d type = %d, want %d", i, got, wantTypes[i])
		}
		if i == 0 {
			if b.Has("OWNERINDEX") {
				t.Error("root record must not carry OWNERINDEX")
			}
			continue
		}
		if got := b.Int("OWNERINDEX", 0); got != wantOwners[i] {
			t.Errorf("record %d owner = %d, want %d", i, got, wantOwners[i])
		}
	}
}

// TestRebuildShape tests that decoding reproduces the exact parent/child
// shape and sibling order at depth three.
func TestRebuildShape(t *testing.T) {
	original := buildNested()
	blocks, _, err := Flatten(original)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	rebuilt, pins, err := Rebuild(blocks, false)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if !reflect.DeepEqual(rebuilt, original) {
		t.Error("rebuilt component differs from original")
	}
	if len(pins) != 2 {
		t.Fatalf("got %d pins, want 2", len(pins))
	}
	if pins[0].Designator != "1" || pins[1].Designator != "2" {
		t.Errorf("pin order = %q, %q; want 1, 2", pins[0].Designator, pins[1].Designator)
	}
	if rebuilt.PinCount() != 2 {
		t.Errorf("PinCount = %d, want 2", rebuilt.PinCount())
	}
}

// TestFlattenCollectsPinAux tests that optional pin payloads land in the
// side maps keyed by sequential pin index, not flat index.
func TestFlattenCollectsPinAux(t *testing.T) {
	comp := NewComponent()
	comp.LibReference = "U1"

	pin0 := NewPin()
	pin0.TextData = []byte("raw blob")
	wide := params.New()
	if err := wide.Add("TEXT", "wide"); err != nil {
		t.Fatal(err)
	}
	pin1 := NewPin()
	pin1.WideText = wide
	pin2 := NewPin() // nothing optional

	// Nest the pins so flat index and pin index diverge.
	rect := &Rectangle{}
	rect.AddChild(pin1)
	comp.AddChild(pin0) // flat 1, pin 0
	comp.AddChild(rect) // flat 2
	comp.AddChild(pin2) // flat 4, pin 2

	_, aux, err := Flatten(comp)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if string(aux.TextData[0]) != "raw blob" {
		t.Errorf("TextData[0] = %q", aux.TextData[0])
	}
	if aux.WideText[1] == nil || aux.WideText[1].Text("TEXT", "") != "wide" {
		t.Error("WideText[1] missing or wrong")
	}
	if len(aux.TextData) != 1 || len(aux.WideText) != 1 || len(aux.SymbolLineWidth) != 0 {
		t.Errorf("aux sizes = %d/%d/%d, want 1/1/0", len(aux.TextData), len(aux.WideText), len(aux.SymbolLineWidth))
	}
}

// TestPinAuxEmpty tests the absence predicate.
func TestPinAuxEmpty(t *testing.T) {
	comp := NewComponent()
	comp.AddChild(NewPin())
	_, aux, err := Flatten(comp)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if !aux.Empty() {
		t.Error("component without optional payloads should have empty aux")
	}
}

// TestRebuildDanglingOwner tests that a forward or out-of-range owner
// reference fails with DanglingOwnerError.
func TestRebuildDanglingOwner(t *testing.T) {
	comp := buildNested()
	blocks, _, err := Flatten(comp)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	// Point record 1 at a record that has not been materialized yet.
	if err := blocks[1].Add("OWNERINDEX", "5"); err != nil {
		t.Fatal(err)
	}

	_, _, err = Rebuild(blocks, false)
	var de *DanglingOwnerError
	if !errors.As(err, &de) {
		t.Fatalf("expected DanglingOwnerError, got %v", err)
	}
	if de.Index != 1 || de.Owner != 5 {
		t.Errorf("error = %+v, want Index 1 Owner 5", de)
	}
}

// TestRebuildUnknownLenient tests that an unknown tag is preserved
// opaquely and re-emits losslessly.
func TestRebuildUnknownLenient(t *testing.T) {
	comp := NewComponent()
	comp.LibReference = "X"
	comp.AddChild(&Line{Corner: Point{5, 5}})

	blocks, _, err := Flatten(comp)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	// Forge an unknown record type with a private field.
	if err := blocks[1].Add("RECORD", "99"); err != nil {
		t.Fatal(err)
	}

	rebuilt, _, err := Rebuild(blocks, false)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	unk, ok := rebuilt.Children()[0].(*Unknown)
	if !ok {
		t.Fatalf("child is %T, want *Unknown", rebuilt.Children()[0])
	}
	if unk.Type() != 99 {
		t.Errorf("Type = %d, want 99", unk.Type())
	}
	if unk.Fields.Text("CORNER.X", "") != "5" {
		t.Error("unknown record lost its fields")
	}

	// Re-flatten and compare the record bytes.
	again, _, err := Flatten(rebuilt)
	if err != nil {
		t.Fatalf("re-Flatten failed: %v", err)
	}
	want, err := blocks[1].Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := again[1].Encode()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("unknown record not lossless:\ngot  %q\nwant %q", got, want)
	}
}

// TestRebuildUnknownStrict tests the strict policy.
func TestRebuildUnknownStrict(t *testing.T) {
	comp := NewComponent()
	comp.AddChild(&Line{})
	blocks, _, err := Flatten(comp)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if err := blocks[1].Add("RECORD", "99"); err != nil {
		t.Fatal(err)
	}

	_, _, err = Rebuild(blocks, true)
	var ue *UnknownRecordError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnknownRecordError, got %v", err)
	}
}

// TestRebuildRootMustBeComponent tests that a non-component record 0 is
// rejected.
func TestRebuildRootMustBeComponent(t *testing.T) {
	block := params.New()
	if err := block.Add("RECORD", "13"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Rebuild([]*params.Collection{block}, false); err == nil {
		t.Fatal("expected error for non-component root")
	}
}

// TestVariantRoundTrips tests export/import symmetry for every concrete
// variant through an encode/decode cycle.
func TestVariantRoundTrips(t *testing.T) {
	prims := []Primitive{
		&Bezier{Base: Base{Location: Point{1, 2}, Color: 128}, Points: []Point{{0, 0}, {5, 9}, {12, 3}, {20, 20}}},
		&Polygon{Points: []Point{{0, 0}, {4, 0}, {2, 3}}, AreaColor: 0xFF00, IsSolid: true},
		&Ellipse{Radius: 10, SecondaryRadius: 4, IsSolid: true},
		&Arc{Radius: 15, StartAngle: 12.5, EndAngle: 270},
		&Line{Base: Base{LineWidth: 2}, Corner: Point{30, 40}},
		&Rectangle{Corner: Point{50, 50}, AreaColor: 7, Transparent: true},
		&Image{Corner: Point{9, 9}, Filename: "logo.png", Embedded: true, KeepAspect: true},
	}
	for _, prim := range prims {
		block := params.New()
		if err := prim.ExportParams(block); err != nil {
			t.Fatalf("%T: ExportParams failed: %v", prim, err)
		}
		data, err := block.Encode()
		if err != nil {
			t.Fatalf("%T: Encode failed: %v", prim, err)
		}
		decoded, err := params.Decode(data)
		if err != nil {
			t.Fatalf("%T: Decode failed: %v", prim, err)
		}

		fresh, ok := New(prim.Type())
		if !ok {
			t.Fatalf("%T: no constructor for type %d", prim, prim.Type())
		}
		if err := fresh.ImportParams(decoded); err != nil {
			t.Fatalf("%T: ImportParams failed: %v", prim, err)
		}
		if _, isImage := prim.(*Image); isImage {
			// Data rides in the assets area, not the parameters.
			fresh.(*Image).Data = prim.(*Image).Data
		}
		if !reflect.DeepEqual(fresh, prim) {
			t.Errorf("%T does not round trip:\ngot  %+v\nwant %+v", prim, fresh, prim)
		}
	}
}
