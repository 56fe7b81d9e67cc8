// Command configure writes the generated configuration files for the board
// named by its first argument:
//
//	configure [-C dir] [-config file.pkl] [-print] [-q] <9k|20k>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/q0jt/go-osca/osca"
	"github.com/q0jt/go-osca/osca/config/board"
	"github.com/q0jt/go-osca/osca/memmap"
)

const (
	exitInvalid  = 1
	exitIO       = 2
	exitInternal = 3
)

var marshalDescription = osca.MarshalDescription

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("configure", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("C", ".", "output directory the generated paths are relative to")
	cfgPath := fs.String("config", "", "Pkl module with per-board memory maps (default: built-in map)")
	printOnly := fs.Bool("print", false, "print the selected memory map as JSON and write nothing")
	quiet := fs.Bool("q", false, "do not list written files")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	// exactly one board; flags after it are not parsed
	if fs.NArg() != 1 {
		fmt.Fprintln(stdout, usage())
		return exitInvalid
	}
	b, err := board.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stdout, usage())
		return exitInvalid
	}

	m := memmap.Default()
	if *cfgPath != "" {
		m, err = osca.LoadMemoryMap(ctx, *cfgPath, b)
		if err != nil {
			fmt.Fprintf(stderr, "failed to load memory map %q: %v\n", *cfgPath, err)
			return exitInvalid
		}
	}

	if *printOnly {
		out, err := marshalDescription(b, m)
		if err != nil {
			fmt.Fprintf(stderr, "failed to describe memory map: %v\n", err)
			return exitInternal
		}
		fmt.Fprintf(stdout, "%s\n", out)
		return 0
	}

	outDir, err := filepath.Abs(*dir)
	if err != nil {
		fmt.Fprintf(stderr, "failed to resolve output directory %q: %v\n", *dir, err)
		return exitIO
	}
	written, err := osca.Generate(outDir, m)
	if err != nil {
		fmt.Fprintf(stderr, "failed to generate configuration for %s: %v\n", b.Description(), err)
		return exitIO
	}
	if !*quiet {
		for _, a := range written {
			fmt.Fprintf(stdout, "wrote %s\n", filepath.Join(outDir, filepath.FromSlash(a.Path)))
		}
	}
	return 0
}

// usage names every accepted board, e.g.
// " first argument must be '9k' or '20k' for Tang Nano 9K or Tang Nano 20K".
func usage() string {
	var ids, names []string
	for _, b := range board.All() {
		ids = append(ids, "'"+b.String()+"'")
		names = append(names, b.Description())
	}
	return fmt.Sprintf(" first argument must be %s for %s",
		strings.Join(ids, " or "), strings.Join(names, " or "))
}
