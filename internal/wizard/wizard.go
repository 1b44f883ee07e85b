package wizard

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/betterde/startfast/internal/output"
	"github.com/betterde/startfast/internal/project"
)

// Inspector reports what is currently at a destination directory.
type Inspector func(dir string) (output.State, error)

// Wizard walks the user through every generation option.
type Wizard struct {
	prompter Prompter
	inspect  Inspector
	out      io.Writer
}

func New(prompter Prompter, inspect Inspector, out io.Writer) *Wizard {
	return &Wizard{prompter: prompter, inspect: inspect, out: out}
}

type feature struct {
	label string
	value *bool
}

// Run asks for each option, starting from defaults, and returns the
// confirmed configuration.
func (w *Wizard) Run(defaults project.Config) (project.Config, error) {
	cfg := defaults
	var err error

	if cfg.Name, err = w.prompter.Input("Project name", cfg.Name, project.ValidateName); err != nil {
		return cfg, err
	}

	path := cfg.Path
	if path == "" {
		path = "."
	}
	if cfg.Path, err = w.prompter.Input("Parent directory", path, notEmpty("parent directory")); err != nil {
		return cfg, err
	}

	if err := w.confirmDestination(&cfg); err != nil {
		return cfg, err
	}

	typ, err := w.prompter.Select("Project type", project.Types, string(cfg.Type))
	if err != nil {
		return cfg, err
	}
	cfg.Type = project.Type(typ)

	db, err := w.prompter.Select("Database", databases(cfg.Database), string(cfg.Database))
	if err != nil {
		return cfg, err
	}
	cfg.Database = project.Database(db)

	auth, err := w.prompter.Select("Authentication", project.AuthMethods, string(cfg.Auth))
	if err != nil {
		return cfg, err
	}
	cfg.Auth = project.Auth(auth)

	features := []feature{
		{"Use async/await", &cfg.Async},
		{"Enable advanced features", &cfg.Advanced},
		{"Docker configuration", &cfg.Docker},
		{"Test setup with pytest", &cfg.Tests},
		{"Documentation", &cfg.Docs},
		{"Monitoring with Prometheus and Grafana", &cfg.Monitoring},
		{"Celery background tasks", &cfg.Celery},
	}
	for _, f := range features {
		if *f.value, err = w.prompter.Confirm(f.label, *f.value); err != nil {
			return cfg, err
		}
	}

	version := cfg.PythonVersion
	if version == "" {
		version = project.DefaultPythonVersion
	}
	if cfg.PythonVersion, err = w.prompter.Input("Python version", version, project.ValidatePythonVersion); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if err := Summary(w.out, cfg); err != nil {
		return cfg, err
	}
	proceed, err := w.prompter.Confirm("Create the project", true)
	if err != nil {
		return cfg, err
	}
	if !proceed {
		return cfg, ErrCancelled
	}
	return cfg, nil
}

// confirmDestination asks before a non-empty directory gets replaced.
func (w *Wizard) confirmDestination(cfg *project.Config) error {
	if cfg.Force || w.inspect == nil {
		return nil
	}

	dir := cfg.Dir()
	state, err := w.inspect(dir)
	if err != nil {
		return fmt.Errorf("error inspecting %s: %w", dir, err)
	}

	switch state {
	case output.NotDirectory:
		return fmt.Errorf("%w: %s is not a directory", output.ErrDestinationExists, dir)
	case output.NonEmpty:
		overwrite, err := w.prompter.Confirm(fmt.Sprintf("Directory %s exists and is not empty. Overwrite it", dir), false)
		if err != nil {
			return err
		}
		if !overwrite {
			return ErrCancelled
		}
		cfg.Force = true
	}
	return nil
}

// Summary prints cfg as an aligned two column table.
func Summary(out io.Writer, cfg project.Config) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Project name", cfg.Name},
		{"Location", cfg.Dir()},
		{"Type", string(cfg.Type)},
		{"Database", string(cfg.Database)},
		{"Authentication", string(cfg.Auth)},
		{"Async/await", yesNo(cfg.Async)},
		{"Advanced", yesNo(cfg.Advanced)},
		{"Docker", yesNo(cfg.Docker)},
		{"Tests", yesNo(cfg.Tests)},
		{"Documentation", yesNo(cfg.Docs)},
		{"Monitoring", yesNo(cfg.Monitoring)},
		{"Celery", yesNo(cfg.Celery)},
		{"Python version", cfg.PythonVersion},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// databases lists the choices offered interactively. Redis rules out most
// types and auth methods, so it is only offered when already selected.
func databases(current project.Database) []project.Option {
	var opts []project.Option
	for _, opt := range project.Databases {
		if opt.Value != string(project.DatabaseRedis) || current == project.DatabaseRedis {
			opts = append(opts, opt)
		}
	}
	return opts
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func notEmpty(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}
