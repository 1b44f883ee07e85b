package template

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"text/template"

	"github.com/betterde/startfast/internal/project"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest at the root of a template tree.
const ManifestFile = "manifest.yaml"

// TemplateSuffix marks sources that are rendered rather than copied verbatim.
const TemplateSuffix = ".tmpl"

const defaultMode fs.FileMode = 0644

// Condition selects the configurations an entry is generated for.
// Empty lists match anything; every non-empty list must match.
type Condition struct {
	Types     []project.Type     `yaml:"types,omitempty"`
	Databases []project.Database `yaml:"databases,omitempty"`
	Auth      []project.Auth     `yaml:"auth,omitempty"`
	Features  []string           `yaml:"features,omitempty"`
}

// Entry is one file of a template tree.
type Entry struct {
	Path   string    `yaml:"path"`
	Source string    `yaml:"source,omitempty"`
	Mode   string    `yaml:"mode,omitempty"`
	When   Condition `yaml:"when,omitempty"`

	mode    fs.FileMode
	static  []byte
	body    *template.Template
	pathTpl *template.Template
}

type Manifest struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Files       []Entry `yaml:"files"`
}

// Load reads manifest.yaml from fsys and every source it references.
// The returned manifest no longer touches fsys.
func Load(fsys fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("error reading template manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error parsing template manifest: %w", err)
	}
	if len(m.Files) == 0 {
		return nil, fmt.Errorf("template manifest %s lists no files", m.Name)
	}

	var errs error
	for i := range m.Files {
		errs = multierr.Append(errs, m.Files[i].load(fsys))
	}
	if errs != nil {
		return nil, errs
	}
	return &m, nil
}

func (e *Entry) load(fsys fs.FS) error {
	if e.Path == "" {
		return fmt.Errorf("manifest entry with source %q has no path", e.Source)
	}
	if err := e.When.validate(); err != nil {
		return fmt.Errorf("%s: %w", e.Path, err)
	}

	e.mode = defaultMode
	if e.Mode != "" {
		mode, err := strconv.ParseUint(e.Mode, 8, 32)
		if err != nil {
			return fmt.Errorf("%s: invalid mode %q", e.Path, e.Mode)
		}
		e.mode = fs.FileMode(mode)
	}

	if strings.Contains(e.Path, "{{") {
		tpl, err := template.New(e.Path).Funcs(funcs()).Option("missingkey=error").Parse(e.Path)
		if err != nil {
			return fmt.Errorf("error parsing path template %s: %w", e.Path, err)
		}
		e.pathTpl = tpl
	} else if err := checkPath(e.Path); err != nil {
		return err
	}

	if e.Source == "" {
		return nil
	}
	content, err := fs.ReadFile(fsys, e.Source)
	if err != nil {
		return fmt.Errorf("error reading template %s: %w", e.Source, err)
	}
	if !strings.HasSuffix(e.Source, TemplateSuffix) {
		e.static = content
		return nil
	}
	tpl, err := template.New(e.Source).Funcs(funcs()).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return fmt.Errorf("error parsing template %s: %w", e.Source, err)
	}
	e.body = tpl
	return nil
}

// validate checks every value and rewrites it to its canonical form.
func (c *Condition) validate() error {
	var errs error
	for i, v := range c.Types {
		t, err := project.ParseType(string(v))
		errs = multierr.Append(errs, err)
		c.Types[i] = t
	}
	for i, v := range c.Databases {
		d, err := project.ParseDatabase(string(v))
		errs = multierr.Append(errs, err)
		c.Databases[i] = d
	}
	for i, v := range c.Auth {
		a, err := project.ParseAuth(string(v))
		errs = multierr.Append(errs, err)
		c.Auth[i] = a
	}
	for i, f := range c.Features {
		f = strings.ToLower(strings.TrimSpace(f))
		if !knownFeature(f) {
			errs = multierr.Append(errs, fmt.Errorf("%w: unknown feature %q", project.ErrInvalidOption, c.Features[i]))
		}
		c.Features[i] = f
	}
	return errs
}

// Match reports whether cfg satisfies the condition.
func (c Condition) Match(cfg project.Config) bool {
	if len(c.Types) > 0 && !oneOf(cfg.Type, c.Types) {
		return false
	}
	if len(c.Databases) > 0 && !oneOf(cfg.Database, c.Databases) {
		return false
	}
	if len(c.Auth) > 0 && !oneOf(cfg.Auth, c.Auth) {
		return false
	}
	features := cfg.Features()
	for _, f := range c.Features {
		if !features[f] {
			return false
		}
	}
	return true
}

func oneOf[T comparable](v T, set []T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func knownFeature(name string) bool {
	return oneOf(name, project.FeatureNames)
}

// checkPath rejects output paths that would land outside the destination.
func checkPath(p string) error {
	if p == "" || path.IsAbs(p) || strings.HasPrefix(p, "/") {
		return fmt.Errorf("output path %q must be relative", p)
	}
	if clean := path.Clean(p); clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("output path %q escapes the project directory", p)
	}
	return nil
}
