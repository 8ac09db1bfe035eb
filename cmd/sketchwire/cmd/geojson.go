package cmd

import (
	"encoding/json"
	"log"
	"path/filepath"
	"strings"

	"honnef.co/go/sketch"
	"honnef.co/go/sketch/polygon"
)

func init() {
	RegisterCommand(&Command{
		Name:  "geojson",
		Short: "Export sketch faces as GeoJSON",
		Long: `Export the faces of one or more sketch files as a GeoJSON feature
collection. Each feature carries its file name and index along with the face
area and the number of holes.

Flags:
  -o FILE        Output file (default: standard output)
  -tolerance T   Flattening tolerance (default 0.01)`,
		Usage: "sketchwire geojson [-o FILE] [-tolerance T] FILE...",
		Run:   runGeoJSON,
	})
}

func runGeoJSON(args []string) error {
	fs := newFlagSet("geojson")
	out := fs.String("o", "", "output file")
	tol := fs.Float64("tolerance", 0.01, "flattening tolerance")
	args, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := checkTolerance(*tol); err != nil {
		return err
	}
	if len(args) == 0 {
		_, err := oneFile("geojson", args)
		return err
	}

	sketches := make([]sketch.Sketch, len(args))
	for i, path := range args {
		_, s, _, err := loadSketch(path)
		if err != nil {
			return err
		}
		sketches[i] = s
	}
	fc := polygon.FeatureCollection(sketches, *tol)
	for i, path := range args {
		fc.Features[i].Properties["name"] = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	w, closeOut, err := output(*out)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if *out != "" && *out != "-" {
		log.Printf("wrote %s", *out)
	}
	return nil
}
