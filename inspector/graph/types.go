package graph

import "strings"

// Symbol represents a resolvable project symbol, either a namespace or a type
type Symbol interface {
	// SymbolName returns the fully qualified dotted name
	SymbolName() string
}

// TypeKind describes the declaration keyword of a type
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindStruct    TypeKind = "struct"
	KindInterface TypeKind = "interface"
	KindEnum      TypeKind = "enum"
	KindRecord    TypeKind = "record"
	KindDelegate  TypeKind = "delegate"
)

// Location represents a byte range in a source file
type Location struct {
	Start int // Start byte offset
	End   int // End byte offset
	Line  int // 1-based line of Start
}

// Type represents a type declared directly inside a namespace
type Type struct {
	Name      string    // Simple type name
	Kind      TypeKind  // Declaration keyword
	Namespace string    // Qualified name of the enclosing namespace
	Path      string    // File path
	Bases     []string  // Base list entries in declaration order
	IsPartial bool      // Whether the declaration carries the partial modifier
	Members   []*Member // Direct body members
	Location  *Location // Location of the declaration
}

// QualifiedName returns namespace qualified type name
func (t *Type) QualifiedName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// SymbolName returns the fully qualified dotted name
func (t *Type) SymbolName() string {
	return t.QualifiedName()
}

// Member represents a member declaration: a type inside a namespace or a field, method, property etc. inside a type
type Member struct {
	Kind      string    // Syntax node kind, e.g. method_declaration
	Name      string    // Declared name when one can be determined
	Text      string    // Source text including leading comments
	Indent    string    // Whitespace preceding the member on its first line
	Namespace string    // Namespace the member was declared in
	Path      string    // File path
	Location  *Location // Location of Text in the source file
	Literals  []Span    // Multi-line string literals, as offsets into Text
}

// Span represents a half open byte range
type Span struct {
	Start int
	End   int
}

// Contains returns true if offset lies strictly inside the span
func (s Span) Contains(offset int) bool {
	return offset > s.Start && offset < s.End
}

// Import represents a using directive
type Import struct {
	Name     string    // Referenced name, e.g. IngameScript.Utils
	Alias    string    // Alias for using X = Y directives
	Static   bool      // Whether it is a using static directive
	Scope    string    // Enclosing namespace, empty for file level directives
	Path     string    // File path
	Location *Location // Location of the directive
}

// SimpleName strips qualification, global alias and generic arguments: global::A.B.Base<T> becomes Base
func SimpleName(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, "<"); idx != -1 {
		name = name[:idx]
	}
	if idx := strings.LastIndex(name, "::"); idx != -1 {
		name = name[idx+2:]
	}
	if idx := strings.LastIndex(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	return strings.TrimSpace(name)
}
