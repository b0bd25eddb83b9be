package pcd

import "fmt"

// A HeaderError reports a PCD header that violates the grammar: a missing or
// out-of-order line, a cardinality mismatch between the per-field lines, or
// an unparseable value.
type HeaderError struct {
	// Keyword is the header keyword being parsed, empty when the problem is
	// structural rather than tied to one line.
	Keyword string
	Reason  string
}

func (e *HeaderError) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("invalid PCD header: %s", e.Reason)
	}
	return fmt.Sprintf("invalid PCD header %s line: %s", e.Keyword, e.Reason)
}

func newHeaderErrorf(keyword, format string, args ...interface{}) error {
	return &HeaderError{Keyword: keyword, Reason: fmt.Sprintf(format, args...)}
}

// A FieldMismatchError reports a column whose shape or element type
// disagrees with its declared or inferred field spec.
type FieldMismatchError struct {
	Field  string
	Reason string
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func newFieldMismatchErrorf(field, format string, args ...interface{}) error {
	return &FieldMismatchError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// An UnsupportedTypeError reports a TYPE and SIZE pair outside the supported
// set: signed and unsigned integers of 1, 2, or 4 bytes, and floats of 4 or
// 8 bytes.
type UnsupportedTypeError struct {
	Type FieldType
	Size int
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported field type %c with size %d", e.Type, e.Size)
}

// A CompressionError reports a corrupt or truncated binary_compressed body:
// bad framing, a declared size that disagrees with the data, or an invalid
// LZF stream. The writer returns one for a body too large for the frame's
// 32-bit size fields.
type CompressionError struct {
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *CompressionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt compressed data: %s: %s", e.Reason, e.Err)
	}
	return "corrupt compressed data: " + e.Reason
}

func (e *CompressionError) Unwrap() error { return e.Err }

func newCompressionErrorf(format string, args ...interface{}) error {
	return &CompressionError{Reason: fmt.Sprintf(format, args...)}
}

// A ParseError reports a malformed line in an ascii body.
type ParseError struct {
	// Point is the zero-based index of the point whose line failed.
	Point  int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid point %d: %s", e.Point, e.Reason)
}

func newParseErrorf(point int, format string, args ...interface{}) error {
	return &ParseError{Point: point, Reason: fmt.Sprintf(format, args...)}
}
