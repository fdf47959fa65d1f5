package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"
)

//go:embed assets/**/*.tmpl
var embeddedFS embed.FS

// Template is a parsed prompt template addressed by ID, e.g.
// "agents/retirement" for assets/agents/retirement.tmpl.
type Template struct {
	ID      string
	Content string

	parsed *template.Template
}

// Render executes the template with the provided data.
func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.parsed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", t.ID, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// Registry holds parsed prompt templates and resolves them by ID.
type Registry struct {
	templates map[string]*Template
	mu        sync.RWMutex
}

// NewRegistryFromFS parses every .tmpl file under the filesystem root.
func NewRegistryFromFS(filesystem fs.FS) (*Registry, error) {
	r := &Registry{templates: map[string]*Template{}}

	err := fs.WalkDir(filesystem, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".tmpl" {
			return nil
		}

		id := strings.TrimSuffix(p, ".tmpl")
		content, err := fs.ReadFile(filesystem, p)
		if err != nil {
			return fmt.Errorf("read template %s: %w", id, err)
		}

		parsed, err := template.New(id).Funcs(builtins()).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", id, err)
		}

		r.templates[id] = &Template{
			ID:      id,
			Content: string(content),
			parsed:  parsed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Get returns the lazily initialized registry over the embedded assets.
func Get() *Registry {
	defaultOnce.Do(func() {
		subFS, err := fs.Sub(embeddedFS, "assets")
		if err != nil {
			defaultErr = fmt.Errorf("prepare embedded templates: %w", err)
			return
		}
		defaultRegistry, defaultErr = NewRegistryFromFS(subFS)
	})

	if defaultErr != nil {
		panic(defaultErr)
	}

	return defaultRegistry
}

// GetTemplate retrieves a template by ID.
func (r *Registry) GetTemplate(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", id)
	}
	return tmpl, nil
}

// Render executes a template by ID with the provided data.
func (r *Registry) Render(id string, data any) (string, error) {
	tmpl, err := r.GetTemplate(id)
	if err != nil {
		return "", err
	}
	return tmpl.Render(data)
}

// List returns all known template IDs.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	return ids
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)
