package pcd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/sync/errgroup"

	"go.viam.com/pcd/lzf"
)

// A binary_compressed body is an 8-byte frame, the little-endian compressed
// and uncompressed byte counts, followed by the LZF stream. The compressed
// blob is field-major: one contiguous block per field, not interleaved rows.
const compressedFrameSize = 8

// readPCDCompressed reads the frame, decompresses the payload, validates
// the declared sizes against the layout, and splits the field-major blob
// into the ordered columns.
func readPCDCompressed(in *bufio.Reader, meta Metadata, l *Layout, cols []Column) error {
	frame := make([]byte, compressedFrameSize)
	if _, err := io.ReadFull(in, frame); err != nil {
		return &CompressionError{Reason: "truncated size header", Err: err}
	}
	compressedSize := int(binary.LittleEndian.Uint32(frame))
	uncompressedSize := int(binary.LittleEndian.Uint32(frame[4:]))
	if uncompressedSize != l.bodySize {
		return newCompressionErrorf("declared uncompressed size %d does not match %d bytes of point data",
			uncompressedSize, l.bodySize)
	}

	payload := make([]byte, compressedSize)
	if _, err := io.ReadFull(in, payload); err != nil {
		return &CompressionError{
			Reason: fmt.Sprintf("truncated payload: declared %d bytes", compressedSize),
			Err:    err,
		}
	}

	blob := make([]byte, uncompressedSize)
	n, err := lzf.Decompress(payload, blob)
	if err != nil {
		return &CompressionError{Reason: "invalid LZF stream", Err: err}
	}
	if n != uncompressedSize {
		return newCompressionErrorf("decompressed %d bytes, declared %d", n, uncompressedSize)
	}

	var group errgroup.Group
	for fi := range meta.Fields {
		fi := fi
		group.Go(func() error {
			col := cols[fi]
			size := meta.Fields[fi].Size
			base := l.blockOff[fi]
			for k := 0; k < col.Len(); k++ {
				col.set(k, blob[base+k*size:base+(k+1)*size])
			}
			return nil
		})
	}
	return group.Wait()
}

// checkFrameSizes rejects byte counts that do not fit the frame's unsigned
// 32-bit fields. NewLayout bounds the body only by the host int range, which
// is wider on 64-bit.
func checkFrameSizes(compressedSize, uncompressedSize int64) error {
	if compressedSize <= math.MaxUint32 && uncompressedSize <= math.MaxUint32 {
		return nil
	}
	return newCompressionErrorf("body of %d bytes (compressed %d) overflows the 32-bit size frame",
		uncompressedSize, compressedSize)
}

// writePCDDataCompressed assembles the field-major blob, compresses it, and
// emits frame then payload. A zero-point cloud still writes a frame with
// both sizes zero.
func writePCDDataCompressed(cloud *Cloud, out io.Writer, l *Layout) error {
	blob := make([]byte, l.bodySize)
	cols := cloud.orderedColumns()

	var group errgroup.Group
	for fi := range cloud.Meta.Fields {
		fi := fi
		group.Go(func() error {
			col := cols[fi]
			size := cloud.Meta.Fields[fi].Size
			base := l.blockOff[fi]
			for k := 0; k < col.Len(); k++ {
				col.put(blob[base+k*size:base+(k+1)*size], k)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	payload := make([]byte, lzf.CompressBound(len(blob)))
	n, err := lzf.Compress(blob, payload)
	if err != nil {
		return err
	}
	if err := checkFrameSizes(int64(n), int64(len(blob))); err != nil {
		return err
	}

	frame := make([]byte, compressedFrameSize)
	binary.LittleEndian.PutUint32(frame, uint32(n))
	binary.LittleEndian.PutUint32(frame[4:], uint32(len(blob)))
	if _, err := out.Write(frame); err != nil {
		return err
	}
	_, err = out.Write(payload[:n])
	return err
}
