package records

import "fmt"

// DanglingOwnerError reports a primitive whose owner index does not
// reference an earlier primitive in the flat sequence.
type DanglingOwnerError struct {
	Index int // flat index of the offending primitive
	Owner int // owner index it declared
}

func (e *DanglingOwnerError) Error() string {
	return fmt.Sprintf("primitive %d references owner %d, which is not an earlier primitive", e.Index, e.Owner)
}

// UnknownRecordError reports a record tag outside the known variant set.
// It is only returned in strict mode; the lenient default preserves the
// record as an Unknown primitive.
type UnknownRecordError struct {
	Index int
	Tag   RecordType
}

func (e *UnknownRecordError) Error() string {
	return fmt.Sprintf("primitive %d has unknown record type %d", e.Index, e.Tag)
}
