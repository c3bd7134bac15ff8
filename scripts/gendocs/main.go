// Command gendocs writes the markdown reference for the alfa CLI and its
// configuration.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config
//	go run ./scripts/gendocs
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
)

// generator produces one part of the reference into a directory.
type generator struct {
	name string
	dir  string // default output directory, relative to the module root
	run  func(outDir string) error
}

var generators = []generator{
	{name: "cli", dir: filepath.Join("docs", "cli"), run: generateCLIDocs},
	{name: "config", dir: filepath.Join("docs", "reference"), run: generateConfigDocs},
}

func main() {
	gen := flag.String("gen", "all", "what to generate: cli, config, all")
	outDir := flag.String("outdir", "", "output directory (only with a single -gen)")
	flag.Parse()

	selected := selectGenerators(*gen)
	if len(selected) == 0 {
		log.Fatalf("unknown -gen value: %s (use: cli, config, all)", *gen)
	}
	if *outDir != "" && len(selected) > 1 {
		log.Fatal("-outdir needs a single -gen value")
	}

	root, err := moduleRoot()
	if err != nil {
		log.Fatalf("failed to find module root: %v", err)
	}
	log.Printf("Module root: %s", root)

	for _, g := range selected {
		dir := *outDir
		if dir == "" {
			dir = filepath.Join(root, g.dir)
		}
		if err := g.run(dir); err != nil {
			log.Fatalf("failed to generate %s docs: %v", g.name, err)
		}
	}
}

// selectGenerators returns the generators named by gen, or all of them.
func selectGenerators(gen string) []generator {
	if gen == "all" {
		return generators
	}
	for _, g := range generators {
		if g.name == gen {
			return []generator{g}
		}
	}
	return nil
}

// moduleRoot returns the nearest directory at or above the working
// directory that holds a go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("no go.mod above the working directory")
		}
		dir = parent
	}
}
