package pcd

import (
	"testing"

	"go.viam.com/test"
)

func TestNewCloud(t *testing.T) {
	xs := Float32Column{1, 2, 3}
	ys := Float32Column{4, 5, 6}
	ids := Uint32Column{7, 8, 9}
	cloud, err := NewCloud([]NamedColumn{
		{Name: "x", Column: xs},
		{Name: "y", Column: ys},
		{Name: "id", Column: ids},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cloud.Meta.Fields, test.ShouldResemble, []FieldSpec{
		{Name: "x", Type: FieldFloat, Size: 4, Count: 1},
		{Name: "y", Type: FieldFloat, Size: 4, Count: 1},
		{Name: "id", Type: FieldUint, Size: 4, Count: 1},
	})
	test.That(t, cloud.Meta.Points, test.ShouldEqual, 3)
	test.That(t, cloud.Meta.Width, test.ShouldEqual, 3)
	test.That(t, cloud.Meta.Height, test.ShouldEqual, 1)
	test.That(t, cloud.Meta.Version, test.ShouldEqual, ".7")
	test.That(t, cloud.Meta.Viewpoint, test.ShouldResemble, DefaultViewpoint())
	test.That(t, cloud.Columns["x"], test.ShouldResemble, xs)
}

func TestNewCloudMultiCount(t *testing.T) {
	cloud, err := NewCloud([]NamedColumn{
		{Name: "normal", Count: 3, Column: make(Float32Column, 9)},
		{Name: "curvature", Column: make(Float32Column, 3)},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cloud.Meta.Points, test.ShouldEqual, 3)
	test.That(t, cloud.Meta.Fields[0].Count, test.ShouldEqual, 3)
	test.That(t, cloud.Meta.Fields[1].Count, test.ShouldEqual, 1)
}

func TestNewCloudErrors(t *testing.T) {
	_, err := NewCloud(nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at least one field")

	_, err = NewCloud([]NamedColumn{{Name: "x", Column: nil}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "nil column")

	_, err = NewCloud([]NamedColumn{
		{Name: "x", Column: Float32Column{1}},
		{Name: "x", Column: Float32Column{2}},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "duplicate field name")

	_, err = NewCloud([]NamedColumn{
		{Name: "normal", Count: 3, Column: make(Float32Column, 10)},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not divisible")

	_, err = NewCloud([]NamedColumn{
		{Name: "x", Column: make(Float32Column, 3)},
		{Name: "y", Column: make(Float32Column, 4)},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `holds 4 points but "x" holds 3`)
}

func TestReshape(t *testing.T) {
	cloud, err := NewCloud([]NamedColumn{{Name: "x", Column: make(Float32Column, 6)}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cloud.Reshape(3, 2), test.ShouldBeNil)
	test.That(t, cloud.Meta.Width, test.ShouldEqual, 3)
	test.That(t, cloud.Meta.Height, test.ShouldEqual, 2)

	err = cloud.Reshape(4, 2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot reshape 6 points into 4x2")
}

func TestCloudValidate(t *testing.T) {
	newValid := func() *Cloud {
		cloud, err := NewCloud([]NamedColumn{
			{Name: "x", Column: Float32Column{1, 2, 3}},
			{Name: "i", Column: Uint8Column{4, 5, 6}},
		})
		test.That(t, err, test.ShouldBeNil)
		return cloud
	}

	test.That(t, newValid().validate(), test.ShouldBeNil)

	cloud := newValid()
	cloud.Meta.Points = 4
	err := cloud.validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "does not match width")

	cloud = newValid()
	cloud.Meta.Points = 4
	cloud.Meta.Width = 4
	err = cloud.validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "elements, want")

	cloud = newValid()
	delete(cloud.Columns, "i")
	err = cloud.validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "columns for")

	cloud = newValid()
	cloud.Columns["x"] = Uint8Column{1, 2, 3}
	err = cloud.validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "does not match declared")
}
