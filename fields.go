package pcd

import "strings"

// FieldType identifies how a field's bytes are interpreted, using the
// single-letter designations of the PCD TYPE header line.
type FieldType byte

const (
	// FieldInt marks signed integer fields.
	FieldInt FieldType = 'I'
	// FieldUint marks unsigned integer fields.
	FieldUint FieldType = 'U'
	// FieldFloat marks IEEE-754 floating point fields.
	FieldFloat FieldType = 'F'
)

// A FieldSpec describes one field of a point: its name, element type and
// byte size, and how many elements of it each point carries. Field order is
// significant and defines the on-disk layout.
type FieldSpec struct {
	Name  string
	Type  FieldType
	Size  int
	Count int
}

// strideBytes is the number of body bytes the field occupies per point.
func (f FieldSpec) strideBytes() int {
	return f.Size * f.Count
}

// supportedElement reports whether a TYPE and SIZE pair is in the closed
// set this package can materialize as a column.
func supportedElement(t FieldType, size int) bool {
	switch t {
	case FieldFloat:
		return size == 4 || size == 8
	case FieldInt, FieldUint:
		return size == 1 || size == 2 || size == 4
	}
	return false
}

func (f FieldSpec) validate() error {
	if f.Name == "" {
		return newFieldMismatchErrorf(f.Name, "empty field name")
	}
	if strings.ContainsAny(f.Name, " \t\r\n") {
		return newFieldMismatchErrorf(f.Name, "field name contains whitespace")
	}
	if f.Count < 1 {
		return newFieldMismatchErrorf(f.Name, "count %d is not positive", f.Count)
	}
	if !supportedElement(f.Type, f.Size) {
		return &UnsupportedTypeError{Type: f.Type, Size: f.Size}
	}
	return nil
}
