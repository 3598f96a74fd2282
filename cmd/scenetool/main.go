// scenetool is a CLI utility for inspecting scene files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/Faultbox/scenegraph/internal/engine/importer"
	"github.com/Faultbox/scenegraph/internal/engine/pass"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	err := run(os.Args[1], os.Args[2:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `scenetool - scene file utility

Usage:
  scenetool <command> [options] <file.obj>

Commands:
  info <file.obj>       Show node, mesh and triangle counts
  tree <file.obj>       Print the node hierarchy with meshes
  bounds <file.obj>     Print the world-space bounding box
  materials <file.obj>  List materials and their textures

Options:
  -lh         Convert to left-handed coordinates
  -smooth N   Smoothing angle in degrees for generated normals

Examples:
  scenetool info crate.obj
  scenetool tree -lh models/house.obj`)
}

func run(command string, args []string, out io.Writer) error {
	var cmd func(*scene.Scene, io.Writer)
	switch command {
	case "info":
		cmd = cmdInfo
	case "tree":
		cmd = cmdTree
	case "bounds":
		cmd = cmdBounds
	case "materials", "mat":
		cmd = cmdMaterials
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(out)
	leftHanded := fs.Bool("lh", false, "Convert to left-handed coordinates")
	smooth := fs.Float64("smooth", 0, "Smoothing angle in degrees")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: scenetool %s [-lh] [-smooth N] <file.obj>", errUsage, command)
	}

	imp := importer.New(importer.Options{
		LeftHanded:     *leftHanded,
		SmoothingAngle: float32(*smooth),
	})
	s, err := imp.LoadFile(fs.Arg(0), nil)
	if err != nil {
		return err
	}

	cmd(s, out)
	for _, w := range imp.Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func cmdInfo(s *scene.Scene, out io.Writer) {
	var stats pass.Stats
	s.Accept(&stats)

	fmt.Fprintf(out, "Scene:       %s\n", s.RootNode().Name())
	fmt.Fprintf(out, "Nodes:       %d\n", stats.Nodes)
	fmt.Fprintf(out, "Depth:       %d\n", stats.MaxDepth)
	fmt.Fprintf(out, "Meshes:      %d (%d transparent)\n", stats.Meshes, stats.Transparent)
	fmt.Fprintf(out, "Materials:   %d\n", stats.Materials())
	fmt.Fprintf(out, "Vertices:    %d\n", stats.Vertices)
	fmt.Fprintf(out, "Triangles:   %d\n", stats.Triangles)
}

func cmdTree(s *scene.Scene, out io.Writer) {
	var stats pass.Stats
	s.Accept(&stats)
	fmt.Fprint(out, stats.Tree())
}

func cmdBounds(s *scene.Scene, out io.Writer) {
	bounds := pass.NewBounds()
	s.Accept(bounds)

	box, ok := bounds.Box()
	if !ok {
		fmt.Fprintln(out, "Scene has no meshes")
		return
	}
	c, e := box.Center(), box.Extents()
	fmt.Fprintf(out, "Min:     (%.4g, %.4g, %.4g)\n", box.Min.X, box.Min.Y, box.Min.Z)
	fmt.Fprintf(out, "Max:     (%.4g, %.4g, %.4g)\n", box.Max.X, box.Max.Y, box.Max.Z)
	fmt.Fprintf(out, "Center:  (%.4g, %.4g, %.4g)\n", c.X, c.Y, c.Z)
	fmt.Fprintf(out, "Extents: (%.4g, %.4g, %.4g)\n", e.X, e.Y, e.Z)
}

func cmdMaterials(s *scene.Scene, out io.Writer) {
	materials := slices.Clone(s.Materials())
	slices.SortFunc(materials, func(a, b *scene.Material) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, m := range materials {
		p := m.Properties
		fmt.Fprintf(out, "%s\n", m.Name)
		fmt.Fprintf(out, "  diffuse:  (%.3g, %.3g, %.3g)\n", p.Diffuse.X, p.Diffuse.Y, p.Diffuse.Z)
		fmt.Fprintf(out, "  opacity:  %.3g", p.Opacity)
		if m.IsTransparent() {
			fmt.Fprint(out, " (transparent)")
		}
		fmt.Fprintln(out)
		for _, t := range scene.TextureTypes() {
			if path, ok := m.Texture(t); ok {
				fmt.Fprintf(out, "  %-9s %s\n", t.String()+":", path)
			}
		}
	}
}
