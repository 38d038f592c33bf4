package graph

import "strings"

// Namespace represents a namespace symbol, independent of any single file it appears in
type Namespace struct {
	Name  string  // Fully qualified name
	Sites []*Site // Declaration sites, in file order
}

// SymbolName returns the fully qualified dotted name
func (n *Namespace) SymbolName() string {
	return n.Name
}

// Declared returns true if the namespace has a declaration site in the project
func (n *Namespace) Declared() bool {
	return len(n.Sites) > 0
}

// Types returns types declared across all sites, site order first
func (n *Namespace) Types() []*Type {
	var result []*Type
	for _, site := range n.Sites {
		result = append(result, site.Types...)
	}
	return result
}

// Project represents a parsed project with an index of namespace and type symbols
type Project struct {
	Name        string
	Type        string
	RootPath    string
	ProjectFile string
	Files       []*File

	namespaces   []*Namespace          // every known namespace, including implicit parents
	declared     []*Namespace          // namespaces with sites, in order of first site
	namespaceMap map[string]*Namespace // qualified name to namespace
	typeMap      map[string][]*Type    // qualified name to declarations (partial types have many)
}

// AddFile adds a file to the project and invalidates the symbol index
func (p *Project) AddFile(file *File) {
	p.Files = append(p.Files, file)
	p.namespaceMap = nil
}

// Init builds the symbol index; it is safe to call repeatedly
func (p *Project) Init() {
	p.namespaces = nil
	p.declared = nil
	p.namespaceMap = make(map[string]*Namespace)
	p.typeMap = make(map[string][]*Type)
	for _, file := range p.Files {
		if file == nil {
			continue
		}
		for _, site := range file.Sites {
			ns := p.ensureNamespace(site.Namespace)
			if !ns.Declared() {
				p.declared = append(p.declared, ns)
			}
			ns.Sites = append(ns.Sites, site)
			for _, typ := range site.Types {
				name := typ.QualifiedName()
				p.typeMap[name] = append(p.typeMap[name], typ)
			}
		}
	}
}

func (p *Project) ensureIndex() {
	if p.namespaceMap == nil {
		p.Init()
	}
}

// ensureNamespace registers name and its implicit parents
func (p *Project) ensureNamespace(name string) *Namespace {
	if ns, ok := p.namespaceMap[name]; ok {
		return ns
	}
	if idx := strings.LastIndex(name, "."); idx != -1 {
		p.ensureNamespace(name[:idx])
	}
	ns := &Namespace{Name: name}
	p.namespaceMap[name] = ns
	p.namespaces = append(p.namespaces, ns)
	return ns
}

// Namespace returns a namespace symbol by qualified name or nil
func (p *Project) Namespace(name string) *Namespace {
	p.ensureIndex()
	return p.namespaceMap[name]
}

// Namespaces returns every known namespace symbol, including implicit parents without sites
func (p *Project) Namespaces() []*Namespace {
	p.ensureIndex()
	return p.namespaces
}

// DeclaredNamespaces returns namespaces with at least one declaration site, in first seen order
func (p *Project) DeclaredNamespaces() []*Namespace {
	p.ensureIndex()
	return p.declared
}

// Sites returns declaration sites of a namespace
func (p *Project) Sites(ns *Namespace) []*Site {
	if ns == nil {
		return nil
	}
	return ns.Sites
}

// Imports returns using directives in scope at a declaration site
func (p *Project) Imports(site *Site) []*Import {
	if site == nil {
		return nil
	}
	return site.Imports
}

// SiteMembers returns the direct members of a namespace declaration site
func (p *Project) SiteMembers(site *Site) []*Member {
	if site == nil {
		return nil
	}
	return site.Members
}

// TypeMembers returns members of every declaration of the type, which spans files for partial types
func (p *Project) TypeMembers(typ *Type) []*Member {
	if typ == nil {
		return nil
	}
	p.ensureIndex()
	declarations := p.typeMap[typ.QualifiedName()]
	if len(declarations) == 0 {
		return typ.Members
	}
	var result []*Member
	for _, declaration := range declarations {
		result = append(result, declaration.Members...)
	}
	return result
}

// BaseType returns the simple name of the direct base type, or empty when the type has no base list
func (p *Project) BaseType(typ *Type) string {
	if typ == nil {
		return ""
	}
	for _, declaration := range p.LookupType(typ.QualifiedName()) {
		if len(declaration.Bases) > 0 {
			return SimpleName(declaration.Bases[0])
		}
	}
	if len(typ.Bases) > 0 {
		return SimpleName(typ.Bases[0])
	}
	return ""
}

// LookupType returns all declarations of a qualified type name
func (p *Project) LookupType(name string) []*Type {
	p.ensureIndex()
	return p.typeMap[name]
}

// Resolve returns the project symbol an import refers to, or nil when it is external or unresolved
func (p *Project) Resolve(imp *Import) Symbol {
	if imp == nil || imp.Name == "" {
		return nil
	}
	p.ensureIndex()
	for _, candidate := range candidateNames(imp.Scope, imp.Name) {
		if imp.Static {
			if types := p.typeMap[candidate]; len(types) > 0 {
				return types[0]
			}
			continue
		}
		if ns, ok := p.namespaceMap[candidate]; ok {
			return ns
		}
		if imp.Alias != "" {
			if types := p.typeMap[candidate]; len(types) > 0 {
				return types[0]
			}
		}
	}
	return nil
}

// candidateNames lists lookup names from innermost enclosing namespace outwards
func candidateNames(scope, name string) []string {
	if strings.HasPrefix(name, "global::") {
		return []string{strings.TrimPrefix(name, "global::")}
	}
	var result []string
	for scope != "" {
		result = append(result, scope+"."+name)
		idx := strings.LastIndex(scope, ".")
		if idx == -1 {
			break
		}
		scope = scope[:idx]
	}
	return append(result, name)
}

// Types returns types declared directly at a declaration site
func (p *Project) Types(site *Site) []*Type {
	if site == nil {
		return nil
	}
	return site.Types
}
