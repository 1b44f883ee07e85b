package generator

import (
	"fmt"
	"io"
	"log"

	"github.com/betterde/startfast/internal/output"
	"github.com/betterde/startfast/internal/project"
	"github.com/betterde/startfast/internal/template"
)

// Result describes a generated project.
type Result struct {
	Dir   string
	Files []string
}

// Generator turns a Config into a project tree.
type Generator struct {
	manifest *template.Manifest
	writer   *output.Writer
	logger   *log.Logger
	verbose  bool
}

type Option func(*Generator)

// WithLogger sends progress lines to logger instead of discarding them.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithVerbose logs one line per written file.
func WithVerbose(verbose bool) Option {
	return func(g *Generator) {
		g.verbose = verbose
	}
}

func New(manifest *template.Manifest, writer *output.Writer, opts ...Option) *Generator {
	g := &Generator{
		manifest: manifest,
		writer:   writer,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Plan validates cfg and renders every file in memory.
func (g *Generator) Plan(cfg project.Config) ([]template.File, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	files, err := g.manifest.Render(cfg)
	if err != nil {
		return nil, fmt.Errorf("error rendering %s templates: %w", g.manifest.Name, err)
	}
	return files, nil
}

// Generate plans cfg and writes the result to cfg.Dir().
func (g *Generator) Generate(cfg project.Config) (*Result, error) {
	g.logger.Printf("generating %s project %s", cfg.Type, cfg.Name)

	files, err := g.Plan(cfg)
	if err != nil {
		return nil, err
	}

	dir := cfg.Dir()
	if err := g.writer.Prepare(dir, cfg.Force); err != nil {
		return nil, err
	}

	g.logger.Printf("writing %d files to %s", len(files), dir)
	if g.verbose {
		for _, file := range files {
			g.logger.Printf("  %s", file.Path)
		}
	}
	if err := g.writer.Write(dir, files); err != nil {
		return nil, err
	}

	result := &Result{Dir: dir, Files: make([]string, len(files))}
	for i, file := range files {
		result.Files[i] = file.Path
	}
	return result, nil
}
