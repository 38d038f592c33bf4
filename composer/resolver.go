package composer

import (
	"log/slog"

	"github.com/viant/scomposer/inspector/graph"
)

// Resolver computes the closure of project declared namespaces reachable through using directives
type Resolver struct {
	view     View
	declared *NamespaceSet
	logger   *slog.Logger
}

// NewResolver creates a resolver; the declared namespace set is taken from view once
func NewResolver(view View, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		view:     view,
		declared: NewNamespaceSet(view.DeclaredNamespaces()...),
		logger:   logger,
	}
}

// Resolve returns the closure seeded by the imports of every site of the entry's namespace
func (r *Resolver) Resolve(entry *Entry) *NamespaceSet {
	return r.FromImports(r.NamespaceImports(entry.Namespace))
}

// NamespaceImports returns the using directives of all sites of ns
func (r *Resolver) NamespaceImports(ns *graph.Namespace) []*graph.Import {
	var result []*graph.Import
	for _, site := range r.view.Sites(ns) {
		result = append(result, r.view.Imports(site)...)
	}
	return result
}

// FromImports returns the closure seeded by imports
func (r *Resolver) FromImports(imports []*graph.Import) *NamespaceSet {
	return r.Close(r.namespaces(imports))
}

// Close grows seeds breadth first until no site of a newly added namespace imports anything new.
// Seeds outside the declared set are dropped.
func (r *Resolver) Close(seeds []*graph.Namespace) *NamespaceSet {
	closure := NewNamespaceSet()
	frontier := NewNamespaceSet()
	for _, seed := range seeds {
		if r.declared.Has(seed) {
			frontier.Add(seed)
		}
	}
	for iteration := 1; frontier.Len() > 0; iteration++ {
		for _, ns := range frontier.items {
			closure.Add(ns)
		}
		r.logger.Debug("resolved namespaces", "iteration", iteration, "frontier", frontier.Names())
		next := NewNamespaceSet()
		for _, ns := range frontier.items {
			for _, candidate := range r.namespaces(r.NamespaceImports(ns)) {
				if !closure.Has(candidate) {
					next.Add(candidate)
				}
			}
		}
		frontier = next
	}
	return closure
}

// namespaces resolves imports, keeping declared namespace symbols only
func (r *Resolver) namespaces(imports []*graph.Import) []*graph.Namespace {
	var result []*graph.Namespace
	for _, imp := range imports {
		ns, ok := r.view.Resolve(imp).(*graph.Namespace)
		if !ok || !r.declared.Has(ns) {
			continue
		}
		result = append(result, ns)
	}
	return result
}
