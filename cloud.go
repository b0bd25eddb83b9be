package pcd

import "github.com/pkg/errors"

// A Cloud is a decoded point cloud: metadata plus one column per field.
// Clouds returned by the read functions are exclusively owned by the
// caller; nothing in this package retains them.
type Cloud struct {
	Meta    Metadata
	Columns map[string]Column
}

// A NamedColumn pairs a field name with its data for cloud construction.
// Construction takes an ordered slice rather than a map because field order
// defines the on-disk layout and written output must be deterministic.
type NamedColumn struct {
	Name string
	// Count is the number of elements per point; zero means one.
	Count  int
	Column Column
}

// NewCloud builds an unorganized cloud (height 1) from columns in the given
// field order, inferring each field spec from its column's element type.
// Every column must describe the same number of points.
func NewCloud(cols []NamedColumn) (*Cloud, error) {
	return NewCloudWithViewpoint(cols, DefaultViewpoint())
}

// NewCloudWithViewpoint is NewCloud with an explicit acquisition pose.
func NewCloudWithViewpoint(cols []NamedColumn, vp Viewpoint) (*Cloud, error) {
	if len(cols) == 0 {
		return nil, errors.New("at least one field is required")
	}

	points := -1
	specs := make([]FieldSpec, 0, len(cols))
	byName := make(map[string]Column, len(cols))
	for _, nc := range cols {
		if nc.Column == nil {
			return nil, newFieldMismatchErrorf(nc.Name, "nil column")
		}
		count := nc.Count
		if count == 0 {
			count = 1
		}
		spec := FieldSpec{
			Name:  nc.Name,
			Type:  nc.Column.ElementType(),
			Size:  nc.Column.ElementSize(),
			Count: count,
		}
		if err := spec.validate(); err != nil {
			return nil, err
		}
		if _, ok := byName[nc.Name]; ok {
			return nil, newFieldMismatchErrorf(nc.Name, "duplicate field name")
		}
		n := nc.Column.Len()
		if n%count != 0 {
			return nil, newFieldMismatchErrorf(nc.Name, "column length %d is not divisible by count %d", n, count)
		}
		p := n / count
		if points == -1 {
			points = p
		} else if p != points {
			return nil, newFieldMismatchErrorf(nc.Name, "column holds %d points but %q holds %d", p, cols[0].Name, points)
		}
		specs = append(specs, spec)
		byName[nc.Name] = nc.Column
	}

	return &Cloud{
		Meta: Metadata{
			Version:   pcdVersion,
			Fields:    specs,
			Width:     points,
			Height:    1,
			Viewpoint: vp,
			Points:    points,
		},
		Columns: byName,
	}, nil
}

// Reshape organizes the cloud as a width by height grid. The product must
// equal the point count.
func (c *Cloud) Reshape(width, height int) error {
	if width < 0 || height < 0 || width*height != c.Meta.Points {
		return errors.Errorf("cannot reshape %d points into %dx%d", c.Meta.Points, width, height)
	}
	c.Meta.Width = width
	c.Meta.Height = height
	return nil
}

// orderedColumns returns the columns in field order.
func (c *Cloud) orderedColumns() []Column {
	cols := make([]Column, len(c.Meta.Fields))
	for i, f := range c.Meta.Fields {
		cols[i] = c.Columns[f.Name]
	}
	return cols
}

// validate checks the invariants every cloud handed to a writer must hold.
func (c *Cloud) validate() error {
	if c.Meta.Points < 0 {
		return errors.Errorf("negative point count %d", c.Meta.Points)
	}
	if c.Meta.Width*c.Meta.Height != c.Meta.Points {
		return errors.Errorf("%d points does not match width %d times height %d",
			c.Meta.Points, c.Meta.Width, c.Meta.Height)
	}
	if len(c.Meta.Fields) == 0 {
		return errors.New("cloud declares no fields")
	}
	if len(c.Columns) != len(c.Meta.Fields) {
		return errors.Errorf("cloud has %d columns for %d declared fields",
			len(c.Columns), len(c.Meta.Fields))
	}
	seen := make(map[string]bool, len(c.Meta.Fields))
	for _, spec := range c.Meta.Fields {
		if err := spec.validate(); err != nil {
			return err
		}
		if seen[spec.Name] {
			return newFieldMismatchErrorf(spec.Name, "duplicate field name")
		}
		seen[spec.Name] = true

		col, ok := c.Columns[spec.Name]
		if !ok || col == nil {
			return newFieldMismatchErrorf(spec.Name, "no column for declared field")
		}
		if col.ElementType() != spec.Type || col.ElementSize() != spec.Size {
			return newFieldMismatchErrorf(spec.Name, "column element type %c%d does not match declared %c%d",
				col.ElementType(), col.ElementSize(), spec.Type, spec.Size)
		}
		if col.Len() != c.Meta.Points*spec.Count {
			return newFieldMismatchErrorf(spec.Name, "column has %d elements, want %d (%d points with count %d)",
				col.Len(), c.Meta.Points*spec.Count, c.Meta.Points, spec.Count)
		}
	}
	return nil
}
