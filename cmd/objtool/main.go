// objtool is a CLI utility for inspecting OBJ mesh documents.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/citymesh/pkg/obj"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "validate", "check":
		cmdValidate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ mesh document utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>      Show parsed mesh statistics
  validate <file.obj>  Check the document for malformed records

Examples:
  objtool info building_8_6_1_0.8.obj
  objtool validate exported_scene.obj`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}

	mesh, err := obj.ParseFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Document:  %s\n", args[0])
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("Vertices:  %d (flattened)\n", mesh.VertexCount())
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool validate <file.obj>")
		os.Exit(1)
	}

	if _, err := obj.ParseFile(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")
}
