package pcd

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestLayoutOffsets(t *testing.T) {
	fields := []FieldSpec{
		{Name: "x", Type: FieldFloat, Size: 4, Count: 1},
		{Name: "y", Type: FieldFloat, Size: 4, Count: 1},
		{Name: "z", Type: FieldFloat, Size: 4, Count: 1},
		{Name: "rgb", Type: FieldUint, Size: 4, Count: 1},
	}
	l, err := NewLayout(fields, 10)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, l.PointStride(), test.ShouldEqual, 16)
	test.That(t, l.BodySize(), test.ShouldEqual, 160)
	// Row offsets step per point, block offsets per whole field.
	test.That(t, l.RowOffsets(), test.ShouldResemble, []int{0, 4, 8, 12})
	test.That(t, l.BlockOffsets(), test.ShouldResemble, []int{0, 40, 80, 120})
}

func TestLayoutMultiCount(t *testing.T) {
	fields := []FieldSpec{
		{Name: "normal", Type: FieldFloat, Size: 4, Count: 3},
		{Name: "ring", Type: FieldUint, Size: 2, Count: 1},
	}
	l, err := NewLayout(fields, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, l.PointStride(), test.ShouldEqual, 14)
	test.That(t, l.BodySize(), test.ShouldEqual, 70)
	test.That(t, l.RowOffsets(), test.ShouldResemble, []int{0, 12})
	test.That(t, l.BlockOffsets(), test.ShouldResemble, []int{0, 60})
}

func TestLayoutZeroPoints(t *testing.T) {
	fields := []FieldSpec{
		{Name: "x", Type: FieldFloat, Size: 4, Count: 1},
		{Name: "y", Type: FieldFloat, Size: 4, Count: 1},
	}
	l, err := NewLayout(fields, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, l.PointStride(), test.ShouldEqual, 8)
	test.That(t, l.BodySize(), test.ShouldEqual, 0)
	test.That(t, l.BlockOffsets(), test.ShouldResemble, []int{0, 0})
}

func TestLayoutErrors(t *testing.T) {
	_, err := NewLayout(nil, 3)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no fields")

	x := FieldSpec{Name: "x", Type: FieldFloat, Size: 4, Count: 1}

	_, err = NewLayout([]FieldSpec{x}, -1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "negative point count")

	// Grammatical but unsupported element types are rejected here.
	_, err = NewLayout([]FieldSpec{{Name: "h", Type: FieldFloat, Size: 2, Count: 1}}, 3)
	var uerr *UnsupportedTypeError
	test.That(t, errors.As(err, &uerr), test.ShouldBeTrue)
	test.That(t, uerr.Type, test.ShouldEqual, FieldFloat)
	test.That(t, uerr.Size, test.ShouldEqual, 2)

	_, err = NewLayout([]FieldSpec{{Name: "big", Type: FieldInt, Size: 8, Count: 1}}, 3)
	test.That(t, errors.As(err, &uerr), test.ShouldBeTrue)

	_, err = NewLayout([]FieldSpec{{Name: "bad name", Type: FieldFloat, Size: 4, Count: 1}}, 3)
	var ferr *FieldMismatchError
	test.That(t, errors.As(err, &ferr), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "whitespace")

	_, err = NewLayout([]FieldSpec{{Name: "x", Type: FieldFloat, Size: 4, Count: 0}}, 3)
	test.That(t, errors.As(err, &ferr), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not positive")
}
