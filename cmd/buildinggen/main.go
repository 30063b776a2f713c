// buildinggen generates parametric building meshes as OBJ files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Faultbox/citymesh/pkg/building"
)

func main() {
	outDir := flag.String("o", ".", "Output directory")
	flag.Usage = printUsage
	flag.Parse()

	params, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if clamped, did := building.ClampSides(params.Sides); did {
		fmt.Fprintf(os.Stderr, "Warning: sides %d out of range [%d, %d], clamped to %d\n",
			params.Sides, building.MinSides, building.MaxSides, clamped)
		params.Sides = clamped
	}

	model, err := building.Generate(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(*outDir, building.Filename(params))
	if err := model.WriteFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d vertices, %d normals, %d faces)\n",
		path, len(model.Vertices), len(model.Normals), len(model.Faces))
}

// parseArgs reads up to four positional arguments, falling back to the
// defaults for any omitted.
func parseArgs(args []string) (building.Params, error) {
	p := building.DefaultParams()

	if len(args) > 4 {
		return p, fmt.Errorf("too many arguments")
	}
	if len(args) > 0 {
		sides, err := strconv.Atoi(args[0])
		if err != nil {
			return p, fmt.Errorf("sides %q is not an integer", args[0])
		}
		p.Sides = sides
	}
	floats := []*float32{&p.Height, &p.RadiusBottom, &p.RadiusTop}
	names := []string{"height", "radiusBottom", "radiusTop"}
	for i := 1; i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return p, fmt.Errorf("%s %q is not a number", names[i-1], args[i])
		}
		*floats[i-1] = float32(f)
	}
	return p, nil
}

func printUsage() {
	fmt.Println(`buildinggen - parametric building mesh generator

Usage:
  buildinggen [-o dir] [sides] [height] [radiusBottom] [radiusTop]

Defaults:
  sides=8 height=6.0 radiusBottom=1.0 radiusTop=0.8

The output filename is derived from the parameters, e.g.
building_8_6_1_0.8.obj. Sides outside [3, 36] are clamped with a
warning; non-positive height or radii are fatal.`)
}
