package pcd

import (
	"github.com/edaniels/golog"
	"github.com/edaniels/lidario"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// The LAS bridge is best-effort interchange, not part of the codec core:
// x, y, z, intensity, and rgb survive a round trip; any other column does
// not.

// NewCloudFromLASFile returns a point cloud from reading a LAS file. The
// coordinates load as float64 columns; intensity loads as a uint16 column;
// point format 2 files additionally carry a packed rgb uint32 column.
func NewCloudFromLASFile(fn string, logger golog.Logger) (*Cloud, error) {
	lf, err := lidario.NewLasFile(fn, "r")
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(lf.Close)

	n := lf.Header.NumberPoints
	xs := make(Float64Column, n)
	ys := make(Float64Column, n)
	zs := make(Float64Column, n)
	intensity := make(Uint16Column, n)
	hasColor := lf.Header.PointFormatID == 2
	var rgb Uint32Column
	if hasColor {
		rgb = make(Uint32Column, n)
	}

	for i := 0; i < n; i++ {
		p, err := lf.LasPoint(i)
		if err != nil {
			return nil, err
		}
		data := p.PointData()
		xs[i], ys[i], zs[i] = data.X, data.Y, data.Z
		intensity[i] = data.Intensity
		if hasColor && p.RgbData() != nil {
			r := uint32(p.RgbData().Red / 256)
			g := uint32(p.RgbData().Green / 256)
			b := uint32(p.RgbData().Blue / 256)
			rgb[i] = r<<16 | g<<8 | b
		}
	}

	cols := []NamedColumn{
		{Name: "x", Column: xs},
		{Name: "y", Column: ys},
		{Name: "z", Column: zs},
		{Name: "intensity", Column: intensity},
	}
	if hasColor {
		cols = append(cols, NamedColumn{Name: "rgb", Column: rgb})
	}
	logger.Debugf("loaded %d LAS points from %q", n, fn)
	return NewCloud(cols)
}

// floatAt adapts either float column type to a float64 accessor.
func floatAt(col Column) (func(int) float64, bool) {
	switch c := col.(type) {
	case Float32Column:
		return func(i int) float64 { return float64(c[i]) }, true
	case Float64Column:
		return func(i int) float64 { return c[i] }, true
	}
	return nil, false
}

// WriteToLASFile writes the x, y, z, intensity, and rgb columns of the
// cloud out to a LAS file. Point format is 0, or 2 when a packed rgb
// column is present.
func WriteToLASFile(cloud *Cloud, fn string) (err error) {
	if err = cloud.validate(); err != nil {
		return
	}
	xAt, ok := floatAt(cloud.Columns["x"])
	if !ok {
		return newFieldMismatchErrorf("x", "LAS export needs a float x column")
	}
	yAt, ok := floatAt(cloud.Columns["y"])
	if !ok {
		return newFieldMismatchErrorf("y", "LAS export needs a float y column")
	}
	zAt, ok := floatAt(cloud.Columns["z"])
	if !ok {
		return newFieldMismatchErrorf("z", "LAS export needs a float z column")
	}
	intensityAt := func(int) uint16 { return 0 }
	if ic, ok := cloud.Columns["intensity"].(Uint16Column); ok {
		intensityAt = func(i int) uint16 { return ic[i] }
	}
	rgb, hasColor := cloud.Columns["rgb"].(Uint32Column)

	lf, err := lidario.NewLasFile(fn, "w")
	if err != nil {
		return
	}
	defer func() {
		cerr := lf.Close()
		err = multierr.Combine(err, cerr)
	}()

	pointFormatID := 0
	if hasColor {
		pointFormatID = 2
	}
	if err = lf.AddHeader(lidario.LasHeader{
		PointFormatID: byte(pointFormatID),
	}); err != nil {
		return
	}

	for i := 0; i < cloud.Meta.Points; i++ {
		var lp lidario.LasPointer
		pr0 := &lidario.PointRecord0{
			X:         xAt(i),
			Y:         yAt(i),
			Z:         zAt(i),
			Intensity: intensityAt(i),
			BitField: lidario.PointBitField{
				Value: (1) | (1 << 3) | (0 << 6) | (0 << 7),
			},
			ClassBitField: lidario.ClassificationBitField{
				Value: 0,
			},
			ScanAngle:     0,
			UserData:      0,
			PointSourceID: 1,
		}
		lp = pr0
		if hasColor {
			r := (rgb[i] >> 16) & 0xFF
			g := (rgb[i] >> 8) & 0xFF
			b := rgb[i] & 0xFF
			lp = &lidario.PointRecord2{
				PointRecord0: pr0,
				RGB: &lidario.RgbData{
					Red:   uint16(r * 256),
					Green: uint16(g * 256),
					Blue:  uint16(b * 256),
				},
			}
		}
		if err = lf.AddLasPoint(lp); err != nil {
			return
		}
	}

	// nolint:nakedret
	return
}
