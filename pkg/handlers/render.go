package handlers

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"

	"github.com/eknkc/pug"
)

// Renderer writes a named page with its view model.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// PugRenderer compiles views/<name>.pug templates. With Reload set every
// render recompiles, which keeps template edits visible during development.
type PugRenderer struct {
	dir    string
	reload bool

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewPugRenderer creates a renderer for templates in dir.
func NewPugRenderer(dir string, reload bool) *PugRenderer {
	return &PugRenderer{
		dir:       dir,
		reload:    reload,
		templates: make(map[string]*template.Template),
	}
}

func (p *PugRenderer) compile(name string) (*template.Template, error) {
	if !p.reload {
		p.mu.RLock()
		tpl, ok := p.templates[name]
		p.mu.RUnlock()
		if ok {
			return tpl, nil
		}
	}

	tpl, err := pug.CompileFile(filepath.Join(p.dir, name+".pug"), pug.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", name, err)
	}

	if !p.reload {
		p.mu.Lock()
		p.templates[name] = tpl
		p.mu.Unlock()
	}
	return tpl, nil
}

// Render executes the named template.
func (p *PugRenderer) Render(w io.Writer, name string, data any) error {
	tpl, err := p.compile(name)
	if err != nil {
		return err
	}
	return tpl.Execute(w, data)
}
