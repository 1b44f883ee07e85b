package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/betterde/startfast/internal/template"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []template.File{
	{Path: "README.md", Content: []byte("# demo\n"), Mode: 0644},
	{Path: "app/__init__.py", Content: []byte{}, Mode: 0644},
	{Path: "scripts/start_worker.py", Content: []byte("#!/usr/bin/env python3\n"), Mode: 0755},
}

// failingFs refuses to open files whose name contains fail.
type failingFs struct {
	afero.Fs
	fail string
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if strings.Contains(name, f.fail) {
		return nil, errors.New("disk full")
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestInspect(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("empty", 0755))
	require.NoError(t, afero.WriteFile(fs, "full/file.txt", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "plain.txt", []byte("x"), 0644))

	w := NewWriter(fs)
	tests := []struct {
		dir  string
		want State
	}{
		{dir: "missing", want: Missing},
		{dir: "empty", want: Empty},
		{dir: "full", want: NonEmpty},
		{dir: "plain.txt", want: NotDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			state, err := w.Inspect(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, state, "got %s", state)
		})
	}
}

func TestPrepareAndWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	require.NoError(t, w.Prepare("demo", false))
	require.NoError(t, w.Write("demo", sample))

	data, err := afero.ReadFile(fs, filepath.Join("demo", "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# demo\n", string(data))

	info, err := fs.Stat(filepath.Join("demo", "scripts", "start_worker.py"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	exists, err := afero.Exists(fs, filepath.Join("demo", "app", "__init__.py"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPrepareReusesEmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("demo", 0755))

	w := NewWriter(fs)
	require.NoError(t, w.Prepare("demo", false))
	assert.False(t, w.created["demo"])
}

func TestPrepareRejectsNonEmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "demo/keep.txt", []byte("original"), 0644))

	w := NewWriter(fs)
	err := w.Prepare("demo", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))

	data, err := afero.ReadFile(fs, "demo/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestPrepareRejectsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "demo", []byte("x"), 0644))

	err := NewWriter(fs).Prepare("demo", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))
}

func TestPrepareForceReplacesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "demo/stale.txt", []byte("old"), 0644))

	w := NewWriter(fs)
	require.NoError(t, w.Prepare("demo", true))
	require.NoError(t, w.Write("demo", sample))

	exists, err := afero.Exists(fs, "demo/stale.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPrepareRefusesRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/hosts", []byte("x"), 0644))

	err := NewWriter(fs).Prepare("/", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestWriteFailureRemovesCreatedDirectory(t *testing.T) {
	fs := failingFs{Fs: afero.NewMemMapFs(), fail: "start_worker"}
	w := NewWriter(fs)

	require.NoError(t, w.Prepare("demo", false))
	err := w.Write("demo", sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scripts/start_worker.py")

	exists, err := afero.DirExists(fs, "demo")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriteFailureKeepsExistingDirectory(t *testing.T) {
	fs := failingFs{Fs: afero.NewMemMapFs(), fail: "start_worker"}
	require.NoError(t, fs.MkdirAll("demo", 0755))
	w := NewWriter(fs)

	require.NoError(t, w.Prepare("demo", false))
	require.Error(t, w.Write("demo", sample))

	exists, err := afero.DirExists(fs, "demo")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOsWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	w := NewWriter(afero.NewOsFs())

	require.NoError(t, w.Prepare(dir, false))
	require.NoError(t, w.Write(dir, sample))

	info, err := os.Stat(filepath.Join(dir, "scripts", "start_worker.py"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
