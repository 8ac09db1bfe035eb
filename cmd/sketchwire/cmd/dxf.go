package cmd

import (
	"fmt"
	"log"

	"honnef.co/go/sketch"
	"honnef.co/go/sketch/dxfio"
	"honnef.co/go/sketch/polygon"
)

func init() {
	RegisterCommand(&Command{
		Name:  "dxf",
		Short: "Export a sketch to DXF",
		Long: `Export the sketch described by a file to a DXF drawing. The outer loop goes
on layer OUTER and holes go on layer HOLES. Lines, arcs and circles are written
as native entities and B-splines are approximated by polylines.

Flags:
  -o FILE        Output file (required)
  -polylines     Write each loop as a single polyline
  -tolerance T   Polyline approximation tolerance (default 0.01)`,
		Usage: "sketchwire dxf -o FILE [-polylines] [-tolerance T] FILE",
		Run:   runDXF,
	})
	RegisterCommand(&Command{
		Name:  "import",
		Short: "Read loops from a DXF drawing",
		Long: `Read the polylines of a DXF drawing as loops and assemble them into a
sketch: the loop enclosing the largest area becomes the outer boundary and the
others become holes. Open polylines are skipped.

Flags:
  -layer NAME    Only read polylines on this layer`,
		Usage: "sketchwire import [-layer NAME] FILE",
		Run:   runImport,
	})
}

func runDXF(args []string) error {
	fs := newFlagSet("dxf")
	out := fs.String("o", "", "output file")
	polylines := fs.Bool("polylines", false, "write loops as polylines")
	tol := fs.Float64("tolerance", dxfio.DefaultTolerance, "polyline approximation tolerance")
	args, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := checkTolerance(*tol); err != nil {
		return err
	}
	path, err := oneFile("dxf", args)
	if err != nil {
		return err
	}
	if *out == "" || *out == "-" {
		return fmt.Errorf("dxf needs an output file (-o)")
	}
	_, s, _, err := loadSketch(path)
	if err != nil {
		return err
	}
	if err := dxfio.WriteFile(*out, s, dxfio.Options{Tolerance: *tol, Polylines: *polylines}); err != nil {
		return err
	}
	log.Printf("wrote %s", *out)
	return nil
}

func runImport(args []string) error {
	fs := newFlagSet("import")
	layer := fs.String("layer", "", "layer to read")
	args, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	path, err := oneFile("import", args)
	if err != nil {
		return err
	}
	res, err := dxfio.ReadFile(path, dxfio.ImportOptions{Layer: *layer})
	if err != nil {
		return err
	}
	for i, im := range res.Loops {
		fmt.Fprintf(stdout, "loop %d: layer %s, %d curves, area %.4g\n", i, im.Layer, im.Loop.Len(), im.Loop.SignedArea())
	}
	if res.Skipped > 0 {
		fmt.Fprintf(stdout, "skipped %d open or degenerate polylines\n", res.Skipped)
	}

	loops := make([]sketch.Loop, len(res.Loops))
	for i, im := range res.Loops {
		loops[i] = im.Loop
	}
	s, err := dxfio.Assemble(loops)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := polygon.CheckHoles(s, dxfio.DefaultTolerance); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(stdout, "sketch: %d holes, area %.4g\n", len(s.Holes), polygon.Area(s, dxfio.DefaultTolerance))
	return nil
}
