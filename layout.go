package pcd

import (
	"math"

	"github.com/pkg/errors"
)

// A Layout gives the byte positions of every field within a PCD body. The
// same field specs produce two different arrangements: binary bodies
// interleave fields row by row, while binary_compressed bodies concatenate
// one contiguous block per field before compression. Both views share one
// Layout so the two encodings cannot drift apart.
type Layout struct {
	fields   []FieldSpec
	points   int
	stride   int
	rowOff   []int
	blockOff []int
	bodySize int
}

// NewLayout validates the field specs and computes the body layout for the
// given point count.
func NewLayout(fields []FieldSpec, points int) (*Layout, error) {
	if points < 0 {
		return nil, errors.Errorf("negative point count %d", points)
	}
	if len(fields) == 0 {
		return nil, errors.New("no fields")
	}

	l := &Layout{
		fields:   fields,
		points:   points,
		rowOff:   make([]int, len(fields)),
		blockOff: make([]int, len(fields)),
	}
	for i, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
		l.rowOff[i] = l.stride
		l.stride += f.strideBytes()
	}
	if points > 0 && l.stride > math.MaxInt/points {
		return nil, errors.Errorf("body of %d points with stride %d overflows", points, l.stride)
	}
	off := 0
	for i, f := range fields {
		l.blockOff[i] = off
		off += f.strideBytes() * points
	}
	l.bodySize = l.stride * points
	return l, nil
}

// PointStride returns the bytes one point occupies in a row-major body.
func (l *Layout) PointStride() int { return l.stride }

// BodySize returns the total body size in bytes, identical for both
// arrangements.
func (l *Layout) BodySize() int { return l.bodySize }

// RowOffsets returns each field's byte offset within a row-major point row.
func (l *Layout) RowOffsets() []int {
	out := make([]int, len(l.rowOff))
	copy(out, l.rowOff)
	return out
}

// BlockOffsets returns each field's block start within a field-major body.
func (l *Layout) BlockOffsets() []int {
	out := make([]int, len(l.blockOff))
	copy(out, l.blockOff)
	return out
}
