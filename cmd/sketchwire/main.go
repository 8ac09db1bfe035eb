// Command sketchwire checks sketch files and converts them to wires, SVG,
// PNG, DXF and GeoJSON.
package main

import (
	"log"
	"os"

	"honnef.co/go/sketch/cmd/sketchwire/cmd"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sketchwire: ")
	if err := cmd.Execute(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
