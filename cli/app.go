// Package cli implements the pcdc command line tool for inspecting and
// converting point cloud files.
package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"go.viam.com/pcd"
)

const (
	// Flags.
	convertFlagFormat = "format"

	formatAscii      = "ascii"
	formatBinary     = "binary"
	formatCompressed = "binary_compressed"
)

// NewApp returns the pcdc app writing its output to out and errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	var logger golog.Logger

	return &cli.App{
		Name:      "pcdc",
		Usage:     "inspect and convert PCD point cloud files",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logger = golog.NewDebugLogger("pcdc")
			} else {
				logger = zap.NewNop().Sugar()
			}

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print the header metadata of a point cloud file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					fn := c.Args().First()
					if fn == "" {
						fmt.Fprintln(c.App.ErrWriter, "file argument required")
						cli.ShowSubcommandHelpAndExit(c, 1)
						return nil
					}

					cloud, err := pcd.NewCloudFromFile(fn, logger)
					if err != nil {
						return err
					}

					printCloudInfo(c.App.Writer, fn, cloud)
					return nil
				},
			},
			{
				Name:      "convert",
				Usage:     "rewrite a point cloud file in another encoding",
				UsageText: fmt.Sprintf("pcdc convert [--%s] <input> <output>", convertFlagFormat),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    convertFlagFormat,
						Aliases: []string{"f"},
						Value:   formatBinary,
						Usage:   "output encoding: ascii, binary, or binary_compressed",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						fmt.Fprintln(c.App.ErrWriter, "input and output file arguments required")
						cli.ShowSubcommandHelpAndExit(c, 1)
						return nil
					}

					outputType, err := parseFormat(c.String(convertFlagFormat))
					if err != nil {
						return err
					}

					cloud, err := pcd.NewCloudFromFile(c.Args().Get(0), logger)
					if err != nil {
						return err
					}
					if err := pcd.WriteToFile(cloud, c.Args().Get(1), outputType); err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "wrote %d points to %s\n", cloud.Meta.Points, c.Args().Get(1))
					return nil
				},
			},
		},
	}
}

func parseFormat(format string) (pcd.PCDType, error) {
	switch format {
	case formatAscii:
		return pcd.PCDAscii, nil
	case formatBinary:
		return pcd.PCDBinary, nil
	case formatCompressed:
		return pcd.PCDCompressed, nil
	default:
		return 0, errors.Errorf("format must be ascii, binary, or binary_compressed, got %q", format)
	}
}

func printCloudInfo(w io.Writer, fn string, cloud *pcd.Cloud) {
	meta := cloud.Meta
	fmt.Fprintf(w, "File: %s\n", fn)
	if filepath.Ext(fn) == ".pcd" {
		fmt.Fprintf(w, "Data: %s\n", meta.Data)
	}
	fmt.Fprintf(w, "Width: %d\nHeight: %d\nPoints: %d\n", meta.Width, meta.Height, meta.Points)
	fmt.Fprintln(w, "Fields:")
	for _, f := range meta.Fields {
		fmt.Fprintf(w, "\t%s type=%c size=%d count=%d\n", f.Name, f.Type, f.Size, f.Count)
	}
	vp := meta.Viewpoint
	fmt.Fprintf(
		w,
		"Viewpoint: translation=(%g %g %g) rotation=(%g %g %g %g)\n",
		vp.Translation.X, vp.Translation.Y, vp.Translation.Z,
		vp.Rotation.Real, vp.Rotation.Imag, vp.Rotation.Jmag, vp.Rotation.Kmag,
	)
}
