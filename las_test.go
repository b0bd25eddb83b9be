package pcd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func TestWriteToLASFileNeedsFloatPosition(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cloud.las")

	cloud, err := NewCloud([]NamedColumn{
		{Name: "intensity", Column: Uint16Column{1, 2}},
	})
	test.That(t, err, test.ShouldBeNil)
	err = WriteToLASFile(cloud, fn)
	test.That(t, err, test.ShouldNotBeNil)
	var ferr *FieldMismatchError
	test.That(t, errors.As(err, &ferr), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "needs a float x column")

	// An integer position column does not qualify.
	cloud, err = NewCloud([]NamedColumn{
		{Name: "x", Column: Int32Column{1, 2}},
		{Name: "y", Column: Float32Column{1, 2}},
		{Name: "z", Column: Float32Column{1, 2}},
	})
	test.That(t, err, test.ShouldBeNil)
	err = WriteToLASFile(cloud, fn)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "needs a float x column")

	// Validation runs before the file is created.
	_, statErr := os.Stat(fn)
	test.That(t, os.IsNotExist(statErr), test.ShouldBeTrue)
}

func TestLASRoundTripWithColor(t *testing.T) {
	xs := Float64Column{1.5, -2.25, 103}
	ys := Float64Column{0.75, -40.5, 2}
	zs := Float64Column{0.25, 10.25, -7.75}
	intensity := Uint16Column{7, 0, 65535}
	rgb := Uint32Column{0xFF0000, 0x00FF00, 0x123456}
	cloud, err := NewCloud([]NamedColumn{
		{Name: "x", Column: xs},
		{Name: "y", Column: ys},
		{Name: "z", Column: zs},
		{Name: "intensity", Column: intensity},
		{Name: "rgb", Column: rgb},
	})
	test.That(t, err, test.ShouldBeNil)

	fn := filepath.Join(t.TempDir(), "cloud.las")
	test.That(t, WriteToLASFile(cloud, fn), test.ShouldBeNil)

	got, err := NewCloudFromFile(fn, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Meta.Points, test.ShouldEqual, 3)

	// LAS stores quantized coordinates, so positions are compared within
	// the quantization step rather than exactly.
	gx := got.Columns["x"].(Float64Column)
	gy := got.Columns["y"].(Float64Column)
	gz := got.Columns["z"].(Float64Column)
	for i := 0; i < 3; i++ {
		test.That(t, gx[i], test.ShouldAlmostEqual, xs[i], .001)
		test.That(t, gy[i], test.ShouldAlmostEqual, ys[i], .001)
		test.That(t, gz[i], test.ShouldAlmostEqual, zs[i], .001)
	}
	test.That(t, got.Columns["intensity"], test.ShouldResemble, intensity)
	test.That(t, got.Columns["rgb"], test.ShouldResemble, rgb)
}

func TestLASRoundTripNoColor(t *testing.T) {
	cloud, err := NewCloud([]NamedColumn{
		{Name: "x", Column: Float32Column{1.5, -2.25}},
		{Name: "y", Column: Float32Column{0.5, 4}},
		{Name: "z", Column: Float32Column{-1.75, 2.5}},
	})
	test.That(t, err, test.ShouldBeNil)

	fn := filepath.Join(t.TempDir(), "cloud.las")
	test.That(t, WriteToLASFile(cloud, fn), test.ShouldBeNil)

	got, err := NewCloudFromLASFile(fn, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Meta.Points, test.ShouldEqual, 2)
	_, hasRGB := got.Columns["rgb"]
	test.That(t, hasRGB, test.ShouldBeFalse)

	gx := got.Columns["x"].(Float64Column)
	test.That(t, gx[0], test.ShouldAlmostEqual, 1.5, .001)
	test.That(t, gx[1], test.ShouldAlmostEqual, -2.25, .001)
}
