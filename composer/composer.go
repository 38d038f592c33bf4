package composer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/scomposer/inspector/graph"
)

// ProjectInspector loads a project into a semantic view
type ProjectInspector interface {
	InspectProject(ctx context.Context, location string) (*graph.Project, error)
}

// Formatter serializes a unit to source text
type Formatter interface {
	Emit(unit *Unit) ([]byte, error)
}

// Result represents a composed script
type Result struct {
	Entry       *Entry
	Closure     *NamespaceSet
	Unit        *Unit
	Text        []byte
	Fingerprint string
}

// Composer runs the locate, resolve, merge and format pipeline
type Composer struct {
	inspector ProjectInspector
	formatter Formatter
	baseType  string
	logger    *slog.Logger
}

// Option configures a Composer
type Option func(*Composer)

// WithBaseType sets the host base type the entry must derive from
func WithBaseType(baseType string) Option {
	return func(c *Composer) {
		c.baseType = baseType
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// New creates a composer
func New(inspector ProjectInspector, formatter Formatter, options ...Option) *Composer {
	ret := &Composer{
		inspector: inspector,
		formatter: formatter,
		baseType:  DefaultBaseType,
		logger:    slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Compose inspects the project at location and composes the script rooted at namespace
func (c *Composer) Compose(ctx context.Context, location, namespace string) (*Result, error) {
	project, err := c.inspector.InspectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	return c.ComposeView(project, namespace)
}

// ComposeView composes the script rooted at namespace from an already loaded view
func (c *Composer) ComposeView(view View, namespace string) (*Result, error) {
	entry, err := Locate(view, namespace, c.baseType)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("located entry", "type", entry.Type.QualifiedName(), "path", entry.Type.Path)

	closure := NewResolver(view, c.logger).Resolve(entry)
	unit := Merge(view, entry, closure)
	c.logger.Debug("merged unit", "namespaces", unit.Namespaces, "members", len(unit.Members))

	text, err := c.formatter.Emit(unit)
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", unit.Entry, err)
	}
	fingerprint, err := graph.Fingerprint(text)
	if err != nil {
		return nil, err
	}
	return &Result{
		Entry:       entry,
		Closure:     closure,
		Unit:        unit,
		Text:        text,
		Fingerprint: fingerprint,
	}, nil
}
