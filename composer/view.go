package composer

import "github.com/viant/scomposer/inspector/graph"

// View is the read-only semantic view of a parsed project
type View interface {
	// DeclaredNamespaces returns namespaces with a declaration site in the project, in first seen order
	DeclaredNamespaces() []*graph.Namespace

	// Sites returns the declaration sites of a namespace
	Sites(ns *graph.Namespace) []*graph.Site

	// Imports returns using directives in scope at a site
	Imports(site *graph.Site) []*graph.Import

	// Resolve returns the symbol an import refers to, nil if unresolved or external
	Resolve(imp *graph.Import) graph.Symbol

	// Types returns types declared directly at a site
	Types(site *graph.Site) []*graph.Type

	// SiteMembers returns the direct members of a site
	SiteMembers(site *graph.Site) []*graph.Member

	// TypeMembers returns the direct members of a type, across all of its declarations
	TypeMembers(typ *graph.Type) []*graph.Member

	// BaseType returns the simple name of the direct base type, empty if none is declared
	BaseType(typ *graph.Type) string
}
