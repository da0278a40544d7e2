package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/staffnote/drawing"
	"github.com/jsphweid/staffnote/note"
	"github.com/jsphweid/staffnote/raster"
	"github.com/spf13/cobra"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

type outputOptions struct {
	format string
	out    string
	scale  float64
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatSVG, "output format, svg or png")
	cmd.Flags().StringVarP(&o.out, "out", "o", "-", "file to write to, - for stdout")
	cmd.Flags().Float64Var(&o.scale, "scale", raster.DefaultOptions().Scale, "pixels per unit for png output")
}

// write encodes img to the --out file, or stdout.
func (o outputOptions) write(stdout io.Writer, img *drawing.Image) error {
	if err := checkFormat(o.format); err != nil {
		return err
	}
	if o.out == "" || o.out == "-" {
		return encodeImage(stdout, img, o.format, o.scale)
	}

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := encodeImage(f, img, o.format, o.scale); err != nil {
		return err
	}
	return f.Close()
}

func checkFormat(format string) error {
	switch strings.ToLower(format) {
	case "", formatSVG, formatPNG:
		return nil
	}
	return fmt.Errorf("unknown format %q, expected svg or png", format)
}

func encodeImage(w io.Writer, img *drawing.Image, format string, scale float64) error {
	switch strings.ToLower(format) {
	case "", formatSVG:
		return img.WriteSVG(w)
	case formatPNG:
		opts := raster.DefaultOptions()
		if scale > 0 {
			opts.Scale = scale
		}
		return raster.WritePNG(img, w, opts)
	}
	return checkFormat(format)
}

func contentType(format string) string {
	if strings.ToLower(format) == formatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// parseNotes reads PITCH DURATION [PITCH DURATION]. A pitch is a number
// from 1 to 7 or a name such as A4. Durations are passed on as given so
// bad ones are reported by the renderer.
func parseNotes(args []string) ([]note.Descriptor, error) {
	if len(args) != 2 && len(args) != 4 {
		return nil, fmt.Errorf("expected PITCH DURATION [PITCH DURATION], got %d args", len(args))
	}
	var notes []note.Descriptor
	for i := 0; i < len(args); i += 2 {
		p, err := parsePitch(args[i])
		if err != nil {
			return nil, err
		}
		d, _ := note.ParseDuration(args[i+1])
		notes = append(notes, note.Descriptor{Pitch: p, Duration: d})
	}
	return notes, nil
}

func parsePitch(s string) (note.Pitch, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return note.Pitch(n), nil
	}
	for p := note.Pitch(0); p <= note.MaxPitch+1; p++ {
		if strings.EqualFold(p.Name(), s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("could not read pitch %q", s)
}
