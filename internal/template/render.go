package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/betterde/startfast/internal/project"
	"github.com/spf13/cast"
)

// File is one rendered output file, relative to the project directory.
type File struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Render evaluates the manifest against cfg. Files are returned sorted by path.
func (m *Manifest) Render(cfg project.Config) ([]File, error) {
	files := make([]File, 0, len(m.Files))
	seen := make(map[string]string, len(m.Files))

	for i := range m.Files {
		entry := &m.Files[i]
		if !entry.When.Match(cfg) {
			continue
		}

		p, err := entry.outputPath(cfg)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[p]; ok {
			return nil, fmt.Errorf("templates %s and %s both render to %s", prev, entry.Path, p)
		}
		seen[p] = entry.Path

		content, err := entry.render(cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: p, Content: content, Mode: entry.mode})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (e *Entry) outputPath(cfg project.Config) (string, error) {
	if e.pathTpl == nil {
		return path.Clean(e.Path), nil
	}
	var buf bytes.Buffer
	if err := e.pathTpl.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("error executing path template %s: %w", e.Path, err)
	}
	p := buf.String()
	if err := checkPath(p); err != nil {
		return "", err
	}
	return path.Clean(p), nil
}

func (e *Entry) render(cfg project.Config) ([]byte, error) {
	switch {
	case e.body != nil:
		var buf bytes.Buffer
		if err := e.body.Execute(&buf, cfg); err != nil {
			return nil, fmt.Errorf("error executing template %s: %w", e.Source, err)
		}
		return buf.Bytes(), nil
	case e.static != nil:
		return append([]byte(nil), e.static...), nil
	default:
		return []byte{}, nil
	}
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"snake":  func(v any) string { return project.Snake(cast.ToString(v)) },
		"pascal": func(v any) string { return project.Pascal(cast.ToString(v)) },
		"kebab":  func(v any) string { return project.Kebab(cast.ToString(v)) },
		"upper":  func(v any) string { return strings.ToUpper(cast.ToString(v)) },
		"lower":  func(v any) string { return strings.ToLower(cast.ToString(v)) },
		"quote":  func(v any) string { return strconv.Quote(cast.ToString(v)) },
		// chars splits a string into its characters, e.g. to underline a title.
		"chars": func(v any) []string { return strings.Split(cast.ToString(v), "") },
		"join":  func(sep string, v any) string { return strings.Join(cast.ToStringSlice(v), sep) },
	}
}
