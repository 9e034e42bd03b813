package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

type Generator struct {
	Name  string
	Dir   string
	Force bool
}

func NewGenerator(name, dir string) *Generator {
	return &Generator{Name: name, Dir: dir}
}

// Generate writes the starter files and returns the paths it wrote. Existing
// files are kept unless Force is set.
func (g *Generator) Generate() ([]string, error) {
	if err := os.MkdirAll(g.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	files := []struct{ name, tmpl string }{
		{"config.yaml", configTemplate},
		{".env.template", envTemplate},
		{"Dockerfile", dockerfileTemplate},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(g.Dir, f.name)
		if _, err := os.Stat(path); err == nil && !g.Force {
			continue
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return written, fmt.Errorf("failed to check %s: %w", f.name, err)
		}
		if err := g.generateFile(path, f.tmpl); err != nil {
			return written, fmt.Errorf("failed to generate %s: %w", f.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func (g *Generator) generateFile(path, tmpl string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	t := template.Must(template.New(filepath.Base(path)).Parse(tmpl))
	return t.Execute(f, struct{ Name string }{Name: g.Name})
}

func runInit(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	dir, _ := cmd.Flags().GetString("dir")
	generator := NewGenerator(name, dir)
	generator.Force, _ = cmd.Flags().GetBool("force")

	written, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	if len(written) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do, files already exist (use --force to overwrite)")
	}
	return nil
}
