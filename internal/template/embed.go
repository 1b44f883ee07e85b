package template

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:fastapi
var bundled embed.FS

// Embedded loads the FastAPI template tree compiled into the binary.
func Embedded() (*Manifest, error) {
	sub, err := fs.Sub(bundled, "fastapi")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// FromDir loads a template tree laid out like the bundled one from disk.
func FromDir(dir string) (*Manifest, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrInvalid}
	}
	return Load(os.DirFS(dir))
}
