package pcd

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// readPCDBinary reads a row-major body of fixed-stride little-endian rows
// and scatters it into the ordered columns, one goroutine per field since
// fields touch disjoint byte ranges.
func readPCDBinary(in *bufio.Reader, meta Metadata, l *Layout, cols []Column) error {
	body := make([]byte, l.bodySize)
	if _, err := io.ReadFull(in, body); err != nil {
		return errors.Wrapf(err, "reading %d bytes of binary point data", l.bodySize)
	}

	var group errgroup.Group
	for fi := range meta.Fields {
		fi := fi
		group.Go(func() error {
			col := cols[fi]
			size := meta.Fields[fi].Size
			count := meta.Fields[fi].Count
			off := l.rowOff[fi]
			for i := 0; i < l.points; i++ {
				base := i*l.stride + off
				for e := 0; e < count; e++ {
					col.set(i*count+e, body[base+e*size:base+(e+1)*size])
				}
			}
			return nil
		})
	}
	return group.Wait()
}

// writePCDDataBinary gathers the columns into one row-major buffer and
// writes it in a single call.
func writePCDDataBinary(cloud *Cloud, out io.Writer, l *Layout) error {
	body := make([]byte, l.bodySize)
	cols := cloud.orderedColumns()

	var group errgroup.Group
	for fi := range cloud.Meta.Fields {
		fi := fi
		group.Go(func() error {
			col := cols[fi]
			size := cloud.Meta.Fields[fi].Size
			count := cloud.Meta.Fields[fi].Count
			off := l.rowOff[fi]
			for i := 0; i < l.points; i++ {
				base := i*l.stride + off
				for e := 0; e < count; e++ {
					col.put(body[base+e*size:base+(e+1)*size], i*count+e)
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	_, err := out.Write(body)
	return err
}
