package cmd

import (
	"fmt"
	"log"

	"honnef.co/go/sketch"
	"honnef.co/go/sketch/raster"
)

func init() {
	RegisterCommand(&Command{
		Name:  "svg",
		Short: "Draw a sketch as SVG",
		Long: `Draw the face of the sketch described by a file as an SVG document. Arcs
and circles become cubic Béziers.

Flags:
  -o FILE        Output file (default: standard output)
  -tolerance T   Curve approximation tolerance (default 0.01)`,
		Usage: "sketchwire svg [-o FILE] [-tolerance T] FILE",
		Run:   runSVG,
	})
	RegisterCommand(&Command{
		Name:  "png",
		Short: "Render a sketch as PNG",
		Long: `Render the face of the sketch described by a file into a PNG image.

Flags:
  -o FILE    Output file (required)
  -size N    Length of the longer side in pixels (default 256)`,
		Usage: "sketchwire png -o FILE [-size N] FILE",
		Run:   runPNG,
	})
}

func runSVG(args []string) error {
	fs := newFlagSet("svg")
	out := fs.String("o", "", "output file")
	tol := fs.Float64("tolerance", 0.01, "curve approximation tolerance")
	args, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := checkTolerance(*tol); err != nil {
		return err
	}
	path, err := oneFile("svg", args)
	if err != nil {
		return err
	}
	_, s, _, err := loadSketch(path)
	if err != nil {
		return err
	}
	w, closeOut, err := output(*out)
	if err != nil {
		return err
	}

	bbox, _ := s.BoundingBox()
	bbox = bbox.Inflate(bbox.Width()/20, bbox.Height()/20)
	// Flip y so the drawing is upright.
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		bbox.X0, -bbox.Y1, bbox.Width(), bbox.Height())
	fmt.Fprint(w, `<path transform="scale(1,-1)" fill="#8ab" stroke="black" stroke-width="0.2%" vector-effect="non-scaling-stroke" fill-rule="evenodd" d="`)
	if err := sketch.WriteSVG(w, s.PathElements(*tol), sketch.SVGOptions{MaxPrecision: 6}); err != nil {
		closeOut()
		return err
	}
	fmt.Fprint(w, "\"/>\n</svg>\n")
	if err := closeOut(); err != nil {
		return err
	}
	if *out != "" && *out != "-" {
		log.Printf("wrote %s", *out)
	}
	return nil
}

func runPNG(args []string) error {
	fs := newFlagSet("png")
	out := fs.String("o", "", "output file")
	size := fs.Int("size", 256, "longer side in pixels")
	args, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	path, err := oneFile("png", args)
	if err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("png needs an output file (-o)")
	}
	_, s, _, err := loadSketch(path)
	if err != nil {
		return err
	}
	w, closeOut, err := output(*out)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(w, s, raster.Options{Size: *size}); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	log.Printf("wrote %s", *out)
	return nil
}
