package pcd

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Column is one field's data for every point of a cloud, stored as a typed
// contiguous slice. The concrete types are the eight fixed-width column
// types in this package; the set is closed, matching the supported PCD
// element types. A column's length is points times the field's count.
type Column interface {
	// Len returns the number of elements.
	Len() int
	// ElementType returns the PCD type letter of the element type.
	ElementType() FieldType
	// ElementSize returns the element width in bytes.
	ElementSize() int

	// put encodes element k little-endian into dst.
	put(dst []byte, k int)
	// set decodes element k little-endian from src.
	set(k int, src []byte)
	// appendText appends the base-10 form of element k to dst.
	appendText(dst []byte, k int) []byte
	// parseElement stores the parsed token as element k.
	parseElement(k int, tok string) error
}

// newColumn allocates the column matching spec, sized for points points.
// This switch is the single dispatch table from (TYPE, SIZE) to element
// type.
func newColumn(spec FieldSpec, points int) (Column, error) {
	n := points * spec.Count
	switch {
	case spec.Type == FieldFloat && spec.Size == 4:
		return make(Float32Column, n), nil
	case spec.Type == FieldFloat && spec.Size == 8:
		return make(Float64Column, n), nil
	case spec.Type == FieldUint && spec.Size == 1:
		return make(Uint8Column, n), nil
	case spec.Type == FieldUint && spec.Size == 2:
		return make(Uint16Column, n), nil
	case spec.Type == FieldUint && spec.Size == 4:
		return make(Uint32Column, n), nil
	case spec.Type == FieldInt && spec.Size == 1:
		return make(Int8Column, n), nil
	case spec.Type == FieldInt && spec.Size == 2:
		return make(Int16Column, n), nil
	case spec.Type == FieldInt && spec.Size == 4:
		return make(Int32Column, n), nil
	default:
		return nil, &UnsupportedTypeError{Type: spec.Type, Size: spec.Size}
	}
}

// Float32Column holds float32 elements.
type Float32Column []float32

// Len returns the number of elements.
func (c Float32Column) Len() int { return len(c) }

// ElementType returns FieldFloat.
func (c Float32Column) ElementType() FieldType { return FieldFloat }

// ElementSize returns 4.
func (c Float32Column) ElementSize() int { return 4 }

func (c Float32Column) put(dst []byte, k int) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(c[k]))
}

func (c Float32Column) set(k int, src []byte) {
	c[k] = math.Float32frombits(binary.LittleEndian.Uint32(src))
}

func (c Float32Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendFloat(dst, float64(c[k]), 'g', -1, 32)
}

func (c Float32Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return err
	}
	c[k] = float32(v)
	return nil
}

// Float64Column holds float64 elements.
type Float64Column []float64

// Len returns the number of elements.
func (c Float64Column) Len() int { return len(c) }

// ElementType returns FieldFloat.
func (c Float64Column) ElementType() FieldType { return FieldFloat }

// ElementSize returns 8.
func (c Float64Column) ElementSize() int { return 8 }

func (c Float64Column) put(dst []byte, k int) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(c[k]))
}

func (c Float64Column) set(k int, src []byte) {
	c[k] = math.Float64frombits(binary.LittleEndian.Uint64(src))
}

func (c Float64Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendFloat(dst, c[k], 'g', -1, 64)
}

func (c Float64Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return err
	}
	c[k] = v
	return nil
}

// Uint8Column holds uint8 elements.
type Uint8Column []uint8

// Len returns the number of elements.
func (c Uint8Column) Len() int { return len(c) }

// ElementType returns FieldUint.
func (c Uint8Column) ElementType() FieldType { return FieldUint }

// ElementSize returns 1.
func (c Uint8Column) ElementSize() int { return 1 }

func (c Uint8Column) put(dst []byte, k int) { dst[0] = c[k] }

func (c Uint8Column) set(k int, src []byte) { c[k] = src[0] }

func (c Uint8Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendUint(dst, uint64(c[k]), 10)
}

func (c Uint8Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseUint(tok, 10, 8)
	if err != nil {
		return err
	}
	c[k] = uint8(v)
	return nil
}

// Uint16Column holds uint16 elements.
type Uint16Column []uint16

// Len returns the number of elements.
func (c Uint16Column) Len() int { return len(c) }

// ElementType returns FieldUint.
func (c Uint16Column) ElementType() FieldType { return FieldUint }

// ElementSize returns 2.
func (c Uint16Column) ElementSize() int { return 2 }

func (c Uint16Column) put(dst []byte, k int) {
	binary.LittleEndian.PutUint16(dst, c[k])
}

func (c Uint16Column) set(k int, src []byte) {
	c[k] = binary.LittleEndian.Uint16(src)
}

func (c Uint16Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendUint(dst, uint64(c[k]), 10)
}

func (c Uint16Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return err
	}
	c[k] = uint16(v)
	return nil
}

// Uint32Column holds uint32 elements.
type Uint32Column []uint32

// Len returns the number of elements.
func (c Uint32Column) Len() int { return len(c) }

// ElementType returns FieldUint.
func (c Uint32Column) ElementType() FieldType { return FieldUint }

// ElementSize returns 4.
func (c Uint32Column) ElementSize() int { return 4 }

func (c Uint32Column) put(dst []byte, k int) {
	binary.LittleEndian.PutUint32(dst, c[k])
}

func (c Uint32Column) set(k int, src []byte) {
	c[k] = binary.LittleEndian.Uint32(src)
}

func (c Uint32Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendUint(dst, uint64(c[k]), 10)
}

func (c Uint32Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return err
	}
	c[k] = uint32(v)
	return nil
}

// Int8Column holds int8 elements.
type Int8Column []int8

// Len returns the number of elements.
func (c Int8Column) Len() int { return len(c) }

// ElementType returns FieldInt.
func (c Int8Column) ElementType() FieldType { return FieldInt }

// ElementSize returns 1.
func (c Int8Column) ElementSize() int { return 1 }

func (c Int8Column) put(dst []byte, k int) { dst[0] = byte(c[k]) }

func (c Int8Column) set(k int, src []byte) { c[k] = int8(src[0]) }

func (c Int8Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendInt(dst, int64(c[k]), 10)
}

func (c Int8Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseInt(tok, 10, 8)
	if err != nil {
		return err
	}
	c[k] = int8(v)
	return nil
}

// Int16Column holds int16 elements.
type Int16Column []int16

// Len returns the number of elements.
func (c Int16Column) Len() int { return len(c) }

// ElementType returns FieldInt.
func (c Int16Column) ElementType() FieldType { return FieldInt }

// ElementSize returns 2.
func (c Int16Column) ElementSize() int { return 2 }

func (c Int16Column) put(dst []byte, k int) {
	binary.LittleEndian.PutUint16(dst, uint16(c[k]))
}

func (c Int16Column) set(k int, src []byte) {
	c[k] = int16(binary.LittleEndian.Uint16(src))
}

func (c Int16Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendInt(dst, int64(c[k]), 10)
}

func (c Int16Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseInt(tok, 10, 16)
	if err != nil {
		return err
	}
	c[k] = int16(v)
	return nil
}

// Int32Column holds int32 elements.
type Int32Column []int32

// Len returns the number of elements.
func (c Int32Column) Len() int { return len(c) }

// ElementType returns FieldInt.
func (c Int32Column) ElementType() FieldType { return FieldInt }

// ElementSize returns 4.
func (c Int32Column) ElementSize() int { return 4 }

func (c Int32Column) put(dst []byte, k int) {
	binary.LittleEndian.PutUint32(dst, uint32(c[k]))
}

func (c Int32Column) set(k int, src []byte) {
	c[k] = int32(binary.LittleEndian.Uint32(src))
}

func (c Int32Column) appendText(dst []byte, k int) []byte {
	return strconv.AppendInt(dst, int64(c[k]), 10)
}

func (c Int32Column) parseElement(k int, tok string) error {
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return err
	}
	c[k] = int32(v)
	return nil
}
