package generator

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/betterde/startfast/internal/output"
	"github.com/betterde/startfast/internal/project"
	"github.com/betterde/startfast/internal/template"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, fs afero.Fs, opts ...Option) *Generator {
	t.Helper()
	manifest, err := template.Embedded()
	require.NoError(t, err)
	return New(manifest, output.NewWriter(fs), opts...)
}

func demoConfig() project.Config {
	cfg := project.Default()
	cfg.Name = "demo"
	cfg.Path = "/work"
	return cfg
}

func snapshot(t *testing.T, fs afero.Fs, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		files[path] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	var logs bytes.Buffer
	g := newGenerator(t, fs, WithLogger(log.New(&logs, "", 0)), WithVerbose(true))

	result, err := g.Generate(demoConfig())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/work", "demo"), result.Dir)
	assert.Contains(t, result.Files, "app/main.py")
	assert.Contains(t, logs.String(), "generating api project demo")
	assert.Contains(t, logs.String(), "  app/main.py")

	for _, p := range result.Files {
		exists, err := afero.Exists(fs, filepath.Join(result.Dir, p))
		require.NoError(t, err)
		assert.True(t, exists, p)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := afero.NewMemMapFs()
	second := afero.NewMemMapFs()

	cfg := demoConfig()
	cfg.Monitoring = true
	cfg.Celery = true

	_, err := newGenerator(t, first).Generate(cfg)
	require.NoError(t, err)
	_, err = newGenerator(t, second).Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, snapshot(t, first, "/work"), snapshot(t, second, "/work"))
}

func TestGenerateRejectsInvalidConfigBeforeWriting(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := demoConfig()
	cfg.Database = "oracle"

	_, err := newGenerator(t, fs).Generate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, project.ErrInvalidOption))

	exists, err := afero.Exists(fs, "/work")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateTwiceWithoutForce(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := newGenerator(t, fs)
	cfg := demoConfig()

	_, err := g.Generate(cfg)
	require.NoError(t, err)
	readme := filepath.Join("/work", "demo", "README.md")
	require.NoError(t, afero.WriteFile(fs, readme, []byte("edited"), 0644))
	before := snapshot(t, fs, "/work")

	_, err = g.Generate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrDestinationExists))
	assert.Equal(t, before, snapshot(t, fs, "/work"))

	cfg.Force = true
	_, err = g.Generate(cfg)
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, readme)
	require.NoError(t, err)
	assert.NotEqual(t, "edited", string(data))
}

func TestPlanDoesNotTouchFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	files, err := newGenerator(t, fs).Plan(demoConfig())
	require.NoError(t, err)
	assert.NotEmpty(t, files)

	exists, err := afero.Exists(fs, "/work")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNoDockerProducesNoDockerFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := demoConfig()
	cfg.Docker = false

	result, err := newGenerator(t, fs).Generate(cfg)
	require.NoError(t, err)

	for _, name := range []string{"Dockerfile", "docker-compose.yml", ".dockerignore"} {
		assert.NotContains(t, result.Files, name)
		exists, err := afero.Exists(fs, filepath.Join(result.Dir, name))
		require.NoError(t, err)
		assert.False(t, exists, name)
	}
}
