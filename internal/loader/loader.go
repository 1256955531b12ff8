// Package loader parses serialized metadata into a graph.Store. N-Triples
// files and HTML pages carrying RDFa are supported; RDFa is the fallback
// for anything not otherwise recognized.
package loader

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ppiankov/creditline/internal/graph"
)

// Loader parses one serialization format
type Loader interface {
	// Name returns the loader name
	Name() string

	// CanHandle checks if this loader can parse the given path/content type
	CanHandle(path string, contentType string) bool

	// Load parses r into a new store. Relative IRIs are resolved against
	// base; the document itself is always the empty-URI resource.
	Load(r io.Reader, base string) (*graph.Store, error)
}

// Registry selects a loader by path and content type
type Registry struct {
	loaders  []Loader
	fallback Loader
}

// NewRegistry creates a registry with the built-in loaders
func NewRegistry() *Registry {
	registry := &Registry{
		loaders: make([]Loader, 0),
	}

	registry.Register(NewNTriplesLoader())
	registry.Register(NewRDFaLoader())

	registry.fallback = NewRDFaLoader()

	return registry
}

// Register adds a loader. Loaders are tried in registration order.
func (r *Registry) Register(loader Loader) {
	r.loaders = append(r.loaders, loader)
}

// FindLoader returns the first loader that can handle path, or the RDFa
// loader when none claims it.
func (r *Registry) FindLoader(path string, contentType string) Loader {
	for _, loader := range r.loaders {
		if loader.CanHandle(path, contentType) {
			return loader
		}
	}
	return r.fallback
}

// Names lists the registered loaders
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.loaders))
	for _, l := range r.loaders {
		names = append(names, l.Name())
	}
	return names
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
