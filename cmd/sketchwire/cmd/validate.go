package cmd

import (
	"fmt"

	"honnef.co/go/sketch"
	"honnef.co/go/sketch/polygon"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check a sketch file",
		Long: `Build the sketch described by a file and check it.

Every loop must close within the file's validation tolerance, and every hole
must lie inside the outer boundary without overlapping another hole.

Flags:
  -tolerance T   Flattening tolerance for the hole checks (default 0.01)`,
		Usage: "sketchwire validate [-tolerance T] FILE",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	fs := newFlagSet("validate")
	tol := fs.Float64("tolerance", 0.01, "flattening tolerance")
	args, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := checkTolerance(*tol); err != nil {
		return err
	}
	path, err := oneFile("validate", args)
	if err != nil {
		return err
	}
	_, s, _, err := loadSketch(path)
	if err != nil {
		return err
	}
	if err := polygon.CheckHoles(s, *tol); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(stdout, "%s: ok\n", path)
	for i, l := range s.Loops() {
		name := "outer"
		if i > 0 {
			name = fmt.Sprintf("hole %d", i-1)
		}
		fmt.Fprintf(stdout, "  %-8s %2d curves  length %.4g  %s\n", name, l.Len(), l.TotalLength(), direction(l))
	}
	fmt.Fprintf(stdout, "  area     %.4g\n", polygon.Area(s, *tol))
	return nil
}

func direction(l sketch.Loop) string {
	if l.IsCCW() {
		return "ccw"
	}
	return "cw"
}
