// Package pcd reads and writes the PCD (Point Cloud Data) file format.
//
// A PCD file is a textual header describing the fields recorded per point,
// followed by a body holding the point data as ascii lines, packed
// little-endian binary rows, or an LZF-compressed blob of per-field blocks.
// Clouds decode into typed columns, one per field; the codec itself is
// stateless and safe for concurrent use on independent inputs.
package pcd

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// pcdVersion is the only PCD version this package produces.
const pcdVersion = ".7"

// PCDType is the format of a pcd file.
type PCDType int

const (
	// PCDAscii ascii format for pcd.
	PCDAscii PCDType = 0
	// PCDBinary binary format for pcd.
	PCDBinary PCDType = 1
	// PCDCompressed compressed binary format for pcd.
	PCDCompressed PCDType = 2
)

// String returns the DATA header value for the format.
func (t PCDType) String() string {
	switch t {
	case PCDAscii:
		return "ascii"
	case PCDBinary:
		return "binary"
	case PCDCompressed:
		return "binary_compressed"
	}
	return fmt.Sprintf("PCDType(%d)", int(t))
}

// A Viewpoint is the acquisition pose recorded in a PCD header: a sensor
// translation and an orientation quaternion.
type Viewpoint struct {
	Translation r3.Vector
	Rotation    quat.Number
}

// DefaultViewpoint returns the identity pose, serialized as
// "0 0 0 1 0 0 0".
func DefaultViewpoint() Viewpoint {
	return Viewpoint{Rotation: quat.Number{Real: 1}}
}

// Metadata describes the shape and encoding of a point cloud.
type Metadata struct {
	// Version is the PCD version tag as read from the file; written files
	// always carry ".7".
	Version string
	// Fields describes each per-point field, in on-disk order.
	Fields []FieldSpec
	// Width and Height give the cloud's organization. Width*Height always
	// equals Points; unorganized clouds have Height 1.
	Width  int
	Height int
	// Viewpoint is the acquisition pose.
	Viewpoint Viewpoint
	// Points is the total number of points.
	Points int
	// Data is the body encoding the cloud was read from. Writers take the
	// output encoding explicitly and do not consult it.
	Data PCDType
}

// totalCount is the number of elements each point carries across all
// fields.
func (m *Metadata) totalCount() int {
	n := 0
	for _, f := range m.Fields {
		n += f.Count
	}
	return n
}
