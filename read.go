package pcd

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// NewCloudFromFile returns a point cloud read in from the given file.
func NewCloudFromFile(fn string, logger golog.Logger) (*Cloud, error) {
	switch filepath.Ext(fn) {
	case ".pcd":
		data, err := os.ReadFile(fn)
		if err != nil {
			return nil, err
		}
		return ReadPCDFromBytes(data)
	case ".las":
		return NewCloudFromLASFile(fn, logger)
	default:
		return nil, errors.Errorf("do not know how to read file %q", fn)
	}
}

// ReadPCDFromBytes parses a whole PCD file held in memory. It behaves
// identically to reading the same bytes from a file.
func ReadPCDFromBytes(data []byte) (*Cloud, error) {
	return ReadPCD(bytes.NewReader(data))
}

// ReadPCD parses a PCD file from the given reader: header first, then the
// body in whichever encoding the header declares. The returned cloud shares
// no memory with the input.
func ReadPCD(inRaw io.Reader) (*Cloud, error) {
	in := bufio.NewReader(inRaw)
	meta, err := readPCDHeader(in)
	if err != nil {
		return nil, err
	}
	l, err := NewLayout(meta.Fields, meta.Points)
	if err != nil {
		return nil, err
	}

	ordered := make([]Column, len(meta.Fields))
	byName := make(map[string]Column, len(meta.Fields))
	for i, spec := range meta.Fields {
		col, err := newColumn(spec, meta.Points)
		if err != nil {
			return nil, err
		}
		ordered[i] = col
		byName[spec.Name] = col
	}

	if meta.Points > 0 {
		switch meta.Data {
		case PCDAscii:
			err = readPCDAscii(in, meta, ordered)
		case PCDBinary:
			err = readPCDBinary(in, meta, l, ordered)
		case PCDCompressed:
			err = readPCDCompressed(in, meta, l, ordered)
		default:
			err = newHeaderErrorf("DATA", "unsupported pcd data type %v", meta.Data)
		}
		if err != nil {
			return nil, err
		}
	}

	return &Cloud{Meta: meta, Columns: byName}, nil
}
