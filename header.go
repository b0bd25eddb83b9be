package pcd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PCD_COMMENT_CHAR starts a comment; the rest of the line is ignored.
const PCD_COMMENT_CHAR = "#"

// PCD_HEADER_FIELDS are the header keywords in their required order.
var PCD_HEADER_FIELDS = []string{"VERSION", "FIELDS", "SIZE", "TYPE", "COUNT", "WIDTH", "HEIGHT", "VIEWPOINT", "POINTS", "DATA"}

// readPCDHeader consumes the header lines from in, leaving the reader
// positioned at the first body byte. Keywords match case-insensitively;
// comment-only and blank lines are skipped; the COUNT line may be omitted
// entirely, defaulting every field to one element per point.
func readPCDHeader(in *bufio.Reader) (Metadata, error) {
	var h Metadata
	idx := 0
	for idx < len(PCD_HEADER_FIELDS) {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return h, errors.Wrapf(err, "reading header line %d", idx)
		}
		atEOF := err != nil
		line, _, _ = strings.Cut(line, PCD_COMMENT_CHAR)
		line = strings.TrimSpace(line)
		if line == "" {
			if atEOF {
				return h, newHeaderErrorf(PCD_HEADER_FIELDS[idx], "unexpected end of header")
			}
			continue
		}

		tokens := strings.Fields(line)
		if PCD_HEADER_FIELDS[idx] == "COUNT" && strings.EqualFold(tokens[0], "WIDTH") {
			for i := range h.Fields {
				h.Fields[i].Count = 1
			}
			idx++
		}
		name := PCD_HEADER_FIELDS[idx]
		if !strings.EqualFold(tokens[0], name) {
			return h, newHeaderErrorf(name, "line is supposed to start with %s but is %q", name, line)
		}
		if err := parsePCDHeaderValues(name, tokens[1:], &h); err != nil {
			return h, err
		}
		idx++
	}
	return h, nil
}

func parsePCDHeaderValues(name string, tokens []string, h *Metadata) error {
	single := func() (string, error) {
		if len(tokens) != 1 {
			return "", newHeaderErrorf(name, "expected a single value, got %d", len(tokens))
		}
		return tokens[0], nil
	}

	switch name {
	case "VERSION":
		v, err := single()
		if err != nil {
			return err
		}
		if v != ".7" && v != "0.7" {
			return newHeaderErrorf(name, "unsupported pcd version %s", v)
		}
		h.Version = v
	case "FIELDS":
		if len(tokens) == 0 {
			return newHeaderErrorf(name, "no fields declared")
		}
		h.Fields = make([]FieldSpec, len(tokens))
		seen := make(map[string]bool, len(tokens))
		for i, token := range tokens {
			if seen[token] {
				return newHeaderErrorf(name, "duplicate field name %q", token)
			}
			seen[token] = true
			h.Fields[i].Name = token
		}
	case "SIZE":
		if len(tokens) != len(h.Fields) {
			return newHeaderErrorf(name, "unexpected number of fields in SIZE line")
		}
		for i, token := range tokens {
			v, err := strconv.ParseUint(token, 10, 8)
			if err != nil {
				return newHeaderErrorf(name, "invalid SIZE field %s: %s", token, err)
			}
			switch v {
			case 1, 2, 4, 8:
			default:
				return newHeaderErrorf(name, "invalid SIZE field %s", token)
			}
			h.Fields[i].Size = int(v)
		}
	case "TYPE":
		if len(tokens) != len(h.Fields) {
			return newHeaderErrorf(name, "unexpected number of fields in TYPE line")
		}
		for i, token := range tokens {
			switch strings.ToUpper(token) {
			case "I":
				h.Fields[i].Type = FieldInt
			case "U":
				h.Fields[i].Type = FieldUint
			case "F":
				h.Fields[i].Type = FieldFloat
			default:
				return newHeaderErrorf(name, "invalid TYPE field %s", token)
			}
		}
	case "COUNT":
		if len(tokens) != len(h.Fields) {
			return newHeaderErrorf(name, "unexpected number of fields in COUNT line")
		}
		for i, token := range tokens {
			v, err := strconv.ParseUint(token, 10, 31)
			if err != nil {
				return newHeaderErrorf(name, "invalid COUNT field %s: %s", token, err)
			}
			if v == 0 {
				return newHeaderErrorf(name, "invalid COUNT field %s", token)
			}
			h.Fields[i].Count = int(v)
		}
	case "WIDTH":
		v, err := single()
		if err != nil {
			return err
		}
		w, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return newHeaderErrorf(name, "invalid WIDTH field %s: %s", v, err)
		}
		h.Width = int(w)
	case "HEIGHT":
		v, err := single()
		if err != nil {
			return err
		}
		hh, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return newHeaderErrorf(name, "invalid HEIGHT field %s: %s", v, err)
		}
		h.Height = int(hh)
	case "VIEWPOINT":
		if len(tokens) != 7 {
			return newHeaderErrorf(name, "unexpected number of fields in VIEWPOINT line. Expected 7, got %d", len(tokens))
		}
		viewpoint := [7]float64{}
		for i, token := range tokens {
			v, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return newHeaderErrorf(name, "invalid VIEWPOINT field %s: %s", token, err)
			}
			viewpoint[i] = v
		}
		h.Viewpoint.Translation.X = viewpoint[0]
		h.Viewpoint.Translation.Y = viewpoint[1]
		h.Viewpoint.Translation.Z = viewpoint[2]
		h.Viewpoint.Rotation.Real = viewpoint[3]
		h.Viewpoint.Rotation.Imag = viewpoint[4]
		h.Viewpoint.Rotation.Jmag = viewpoint[5]
		h.Viewpoint.Rotation.Kmag = viewpoint[6]
	case "POINTS":
		v, err := single()
		if err != nil {
			return err
		}
		points, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return newHeaderErrorf(name, "invalid POINTS field %s: %s", v, err)
		}
		if int(points) != h.Width*h.Height {
			return newHeaderErrorf(name, "POINTS field %d does not match WIDTH*HEIGHT %d", points, h.Width*h.Height)
		}
		h.Points = int(points)
	case "DATA":
		v, err := single()
		if err != nil {
			return err
		}
		switch strings.ToLower(v) {
		case "ascii":
			h.Data = PCDAscii
		case "binary":
			h.Data = PCDBinary
		case "binary_compressed":
			h.Data = PCDCompressed
		default:
			return newHeaderErrorf(name, "unsupported pcd data type %s", v)
		}
	}
	return nil
}

// writePCDHeader emits the canonical eleven-line header: the format comment
// followed by the ten keyword lines, COUNT always materialized and VERSION
// always .7.
func writePCDHeader(out io.Writer, meta *Metadata, outputType PCDType) error {
	names := make([]string, len(meta.Fields))
	sizes := make([]string, len(meta.Fields))
	types := make([]string, len(meta.Fields))
	counts := make([]string, len(meta.Fields))
	for i, f := range meta.Fields {
		names[i] = f.Name
		sizes[i] = strconv.Itoa(f.Size)
		types[i] = string(f.Type)
		counts[i] = strconv.Itoa(f.Count)
	}

	var buf bytes.Buffer
	buf.WriteString("# .PCD v.7 - Point Cloud Data file format\n")
	buf.WriteString("VERSION .7\n")
	fmt.Fprintf(&buf, "FIELDS %s\n", strings.Join(names, " "))
	fmt.Fprintf(&buf, "SIZE %s\n", strings.Join(sizes, " "))
	fmt.Fprintf(&buf, "TYPE %s\n", strings.Join(types, " "))
	fmt.Fprintf(&buf, "COUNT %s\n", strings.Join(counts, " "))
	fmt.Fprintf(&buf, "WIDTH %d\n", meta.Width)
	fmt.Fprintf(&buf, "HEIGHT %d\n", meta.Height)
	vp := meta.Viewpoint
	fmt.Fprintf(&buf, "VIEWPOINT %g %g %g %g %g %g %g\n",
		vp.Translation.X, vp.Translation.Y, vp.Translation.Z,
		vp.Rotation.Real, vp.Rotation.Imag, vp.Rotation.Jmag, vp.Rotation.Kmag)
	fmt.Fprintf(&buf, "POINTS %d\n", meta.Points)
	fmt.Fprintf(&buf, "DATA %s\n", outputType)

	_, err := out.Write(buf.Bytes())
	return err
}
