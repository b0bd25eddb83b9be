package pcd

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// readPCDAscii parses one whitespace-separated line per point into the
// ordered columns.
func readPCDAscii(in *bufio.Reader, meta Metadata, cols []Column) error {
	total := meta.totalCount()
	for i := 0; i < meta.Points; i++ {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrapf(err, "reading point %d", i)
		}
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			return errors.Wrapf(io.ErrUnexpectedEOF, "reading point %d", i)
		}
		tokens := strings.Fields(line)
		if len(tokens) != total {
			return newParseErrorf(i, "unexpected number of fields: want %d, got %d", total, len(tokens))
		}
		ti := 0
		for fi, col := range cols {
			count := meta.Fields[fi].Count
			for e := 0; e < count; e++ {
				if err := col.parseElement(i*count+e, tokens[ti]); err != nil {
					return newParseErrorf(i, "field %s: invalid value %q: %s", meta.Fields[fi].Name, tokens[ti], err)
				}
				ti++
			}
		}
	}
	return nil
}

// writePCDDataAscii emits one line per point, fields in declared order and
// count-expanded. Floats print in their shortest form that parses back to
// the identical value, so an ascii round trip through this package is
// exact.
func writePCDDataAscii(cloud *Cloud, out io.Writer) error {
	w := bufio.NewWriter(out)
	cols := cloud.orderedColumns()
	line := make([]byte, 0, 64)
	for i := 0; i < cloud.Meta.Points; i++ {
		line = line[:0]
		for fi, col := range cols {
			count := cloud.Meta.Fields[fi].Count
			for e := 0; e < count; e++ {
				if len(line) > 0 {
					line = append(line, ' ')
				}
				line = col.appendText(line, i*count+e)
			}
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return w.Flush()
}
