package cmd

import (
	"fmt"

	"honnef.co/go/sketch"
)

func init() {
	RegisterCommand(&Command{
		Name:  "wire",
		Short: "Print the wires of a sketch",
		Long: `Lift the sketch described by a file onto its plane and print the resulting
wires: one line per edge, naming the curve kind and the vertices it joins.`,
		Usage: "sketchwire wire FILE",
		Run:   runWire,
	})
}

func runWire(args []string) error {
	path, err := oneFile("wire", args)
	if err != nil {
		return err
	}
	_, s, p, err := loadSketch(path)
	if err != nil {
		return err
	}
	outer, holes, err := s.Wires(p)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(stdout, "plane origin %v normal %v\n", p.Origin(), p.Normal())
	printWire("outer", outer)
	for i, h := range holes {
		printWire(fmt.Sprintf("hole %d", i), h)
	}
	return nil
}

func printWire(name string, w *sketch.Wire) {
	fmt.Fprintf(stdout, "%s: %d edges\n", name, w.Len())
	for _, e := range w.Edges {
		fmt.Fprintf(stdout, "  %-7s %v -> %v\n", e.Kind, e.Start, e.End)
	}
}
