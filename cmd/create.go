/*
Copyright © 2025 George <george@betterde.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/betterde/startfast/internal/generator"
	"github.com/betterde/startfast/internal/output"
	"github.com/betterde/startfast/internal/project"
	"github.com/betterde/startfast/internal/template"
	"github.com/betterde/startfast/internal/wizard"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	appFs    afero.Fs        = afero.NewOsFs()
	prompter wizard.Prompter = wizard.Terminal{}
)

// plan is printed by --dry-run.
type plan struct {
	Project project.Config `yaml:"project"`
	Dir     string         `yaml:"dir"`
	Files   []string       `yaml:"files"`
}

func run(v *viper.Viper, args []string, out io.Writer) error {
	cfg, err := resolveConfig(v, args)
	if err != nil {
		return err
	}

	manifest, err := loadManifest(v.GetString("template-dir"))
	if err != nil {
		return err
	}

	writer := output.NewWriter(appFs)
	if len(args) == 0 || v.GetBool("interactive") {
		cfg, err = wizard.New(prompter, writer.Inspect, out).Run(cfg)
		if err != nil {
			return err
		}
	}

	g := generator.New(manifest, writer,
		generator.WithLogger(log.Default()),
		generator.WithVerbose(v.GetBool("verbose")),
	)

	if v.GetBool("dry-run") {
		files, err := g.Plan(cfg)
		if err != nil {
			return err
		}
		p := plan{Project: cfg, Dir: cfg.Dir(), Files: make([]string, len(files))}
		for i, file := range files {
			p.Files[i] = file.Path
		}
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(p); err != nil {
			return err
		}
		return encoder.Close()
	}

	result, err := g.Generate(cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, nextSteps(cfg, result))
	return err
}

func loadManifest(dir string) (*template.Manifest, error) {
	if dir == "" {
		return template.Embedded()
	}
	return template.FromDir(dir)
}

func nextSteps(cfg project.Config, result *generator.Result) string {
	steps := fmt.Sprintf("Created %s in %s with %d files\n\nNext steps:\n", describe(cfg), result.Dir, len(result.Files))
	steps += fmt.Sprintf("  cd %s\n", result.Dir)
	steps += "  pip install -r requirements.txt\n"
	steps += "  uvicorn app.main:app --reload\n"
	if cfg.Docker {
		steps += "\nOr run everything with Docker:\n  docker-compose up --build\n"
	}
	return steps
}
