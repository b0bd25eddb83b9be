package pcd

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ToPCD writes cloud to out in the given encoding, header then body.
func ToPCD(cloud *Cloud, out io.Writer, outputType PCDType) error {
	switch outputType {
	case PCDAscii, PCDBinary, PCDCompressed:
	default:
		return errors.Errorf("unsupported pcd data type %v", outputType)
	}
	if err := cloud.validate(); err != nil {
		return err
	}
	l, err := NewLayout(cloud.Meta.Fields, cloud.Meta.Points)
	if err != nil {
		return err
	}
	if err := writePCDHeader(out, &cloud.Meta, outputType); err != nil {
		return err
	}
	switch outputType {
	case PCDAscii:
		return writePCDDataAscii(cloud, out)
	case PCDBinary:
		return writePCDDataBinary(cloud, out, l)
	default:
		return writePCDDataCompressed(cloud, out, l)
	}
}

// WriteToFile writes cloud out to the given path in the given encoding.
// PCD destinations stage through a temporary file in the same directory and
// rename on success, so a failed write never leaves a truncated file at fn.
// A ".las" destination routes to WriteToLASFile, which writes the LAS
// subset of the cloud and ignores outputType.
func WriteToFile(cloud *Cloud, fn string, outputType PCDType) (err error) {
	if filepath.Ext(fn) == ".las" {
		return WriteToLASFile(cloud, fn)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fn), ".pcd-tmp-*")
	if err != nil {
		return errors.Wrap(err, "staging temporary file")
	}
	defer func() {
		if err != nil {
			err = multierr.Combine(err, os.Remove(tmp.Name()))
		}
	}()

	w := bufio.NewWriter(tmp)
	err = ToPCD(cloud, w, outputType)
	if err == nil {
		err = w.Flush()
	}
	err = multierr.Combine(err, tmp.Close())
	if err != nil {
		return
	}
	return os.Rename(tmp.Name(), fn)
}
