package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/betterde/startfast/internal/template"
	"github.com/spf13/afero"
)

var ErrDestinationExists = errors.New("destination already exists")

// State describes what is currently at a destination path.
type State int

const (
	Missing State = iota
	Empty
	NonEmpty
	NotDirectory
)

func (s State) String() string {
	switch s {
	case Missing:
		return "missing"
	case Empty:
		return "empty"
	case NonEmpty:
		return "non-empty"
	case NotDirectory:
		return "not a directory"
	}
	return "unknown"
}

// Writer materialises rendered files on a filesystem.
type Writer struct {
	fs      afero.Fs
	created map[string]bool
}

func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs, created: make(map[string]bool)}
}

// Inspect reports the state of dir without modifying anything.
func (w *Writer) Inspect(dir string) (State, error) {
	info, err := w.fs.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return Missing, nil
	}
	if err != nil {
		return Missing, err
	}
	if !info.IsDir() {
		return NotDirectory, nil
	}
	empty, err := afero.IsEmpty(w.fs, dir)
	if err != nil {
		return NonEmpty, err
	}
	if empty {
		return Empty, nil
	}
	return NonEmpty, nil
}

// Prepare makes dir ready to receive a project. A non-empty directory is
// only replaced when force is set.
func (w *Writer) Prepare(dir string, force bool) error {
	state, err := w.Inspect(dir)
	if err != nil {
		return fmt.Errorf("error inspecting %s: %w", dir, err)
	}

	switch state {
	case NotDirectory:
		return fmt.Errorf("%w: %s is not a directory", ErrDestinationExists, dir)
	case Empty:
		return nil
	case NonEmpty:
		if !force {
			return fmt.Errorf("%w: target directory %s exists and is non-empty (use --force to overwrite)", ErrDestinationExists, dir)
		}
		if isRoot(dir) {
			return fmt.Errorf("refusing to overwrite %s", dir)
		}
		if err := w.fs.RemoveAll(dir); err != nil {
			return fmt.Errorf("error removing %s: %w", dir, err)
		}
	}

	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir error: %w", err)
	}
	w.created[filepath.Clean(dir)] = true
	return nil
}

// Write stores files below dir. When dir was created by Prepare and a write
// fails, dir is removed again.
func (w *Writer) Write(dir string, files []template.File) (err error) {
	defer func() {
		if err != nil && w.created[filepath.Clean(dir)] {
			_ = w.fs.RemoveAll(dir)
		}
	}()

	for _, file := range files {
		target := filepath.Join(dir, filepath.FromSlash(file.Path))
		if err := w.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("error creating directories for %s: %w", file.Path, err)
		}
		mode := file.Mode
		if mode == 0 {
			mode = 0644
		}
		if err := afero.WriteFile(w.fs, target, file.Content, mode); err != nil {
			return fmt.Errorf("error creating file %s: %w", file.Path, err)
		}
		// WriteFile leaves the mode of an existing file alone.
		if err := w.fs.Chmod(target, mode); err != nil {
			return fmt.Errorf("error setting mode of %s: %w", file.Path, err)
		}
	}
	return nil
}

func isRoot(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return true
	}
	return filepath.Dir(abs) == abs
}
