package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/scomposer/inspector/graph"
)

var typeKinds = map[string]graph.TypeKind{
	"class_declaration":         graph.KindClass,
	"struct_declaration":        graph.KindStruct,
	"interface_declaration":     graph.KindInterface,
	"enum_declaration":          graph.KindEnum,
	"record_declaration":        graph.KindRecord,
	"record_struct_declaration": graph.KindRecord,
	"delegate_declaration":      graph.KindDelegate,
}

// preprocessor lines that travel with the following member
var directiveKinds = map[string]bool{
	"preproc_pragma":      true,
	"preproc_nullable":    true,
	"preproc_define":      true,
	"preproc_undef":       true,
	"preproc_line":        true,
	"preproc_error":       true,
	"preproc_warning":     true,
	"preprocessor_call":   true,
	"pragma_directive":    true,
	"nullable_directive":  true,
	"define_directive":    true,
	"undef_directive":     true,
	"line_directive":      true,
	"error_directive":     true,
	"warning_directive":   true,
	"reference_directive": true,
}

// region markers are dropped, a #region separated from its #endregion does not compile
var regionKinds = map[string]bool{
	"preproc_region":      true,
	"preproc_endregion":   true,
	"region_directive":    true,
	"endregion_directive": true,
}

// string literals whose content may span lines
var literalKinds = map[string]bool{
	"string_literal":                 true,
	"verbatim_string_literal":        true,
	"raw_string_literal":             true,
	"interpolated_string_expression": true,
}

var nameKinds = map[string]bool{
	"identifier":           true,
	"qualified_name":       true,
	"generic_name":         true,
	"alias_qualified_name": true,
}

// parseUsingDirective extracts the referenced name, alias and static flag of a using directive
func parseUsingDirective(node *sitter.Node, source []byte, scope, path string) *graph.Import {
	imp := &graph.Import{Scope: scope, Path: path, Location: location(node)}
	var target *sitter.Node
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if !child.IsNamed() {
			switch child.Type() {
			case "static":
				imp.Static = true
			case "=":
				if target != nil {
					imp.Alias = compact(target.Content(source))
					target = nil
				}
			}
			continue
		}
		switch {
		case child.Type() == "name_equals":
			imp.Alias = compact(strings.TrimSuffix(strings.TrimSpace(child.Content(source)), "="))
		case nameKinds[child.Type()]:
			target = child
		}
	}
	if target != nil {
		imp.Name = compact(target.Content(source))
	}
	return imp
}

// parseTypeDeclaration extracts a type declared directly in a namespace, nil for other nodes
func parseTypeDeclaration(node *sitter.Node, source []byte, namespace, path string, keepComments bool) *graph.Type {
	kind, ok := typeKinds[node.Type()]
	if !ok {
		return nil
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	typ := &graph.Type{
		Name:      nameNode.Content(source),
		Kind:      kind,
		Namespace: namespace,
		Path:      path,
		Location:  location(node),
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "modifier":
			if strings.TrimSpace(child.Content(source)) == "partial" {
				typ.IsPartial = true
			}
		case "base_list":
			typ.Bases = parseBaseList(child, source)
		}
	}
	if body := bodyNode(node); body != nil && body.Type() == "declaration_list" {
		collector := newMemberCollector(source, namespace, path, keepComments)
		for _, child := range namedChildren(body) {
			if member := collector.add(child); member != nil {
				typ.Members = append(typ.Members, member)
			}
		}
	}
	return typ
}

// parseBaseList returns base entries in order; primary constructor arguments are dropped
func parseBaseList(node *sitter.Node, source []byte) []string {
	var bases []string
	for _, child := range namedChildren(node) {
		switch child.Type() {
		case "comment":
			continue
		case "primary_constructor_base_type":
			if child.NamedChildCount() > 0 {
				bases = append(bases, compact(child.NamedChild(0).Content(source)))
			}
		default:
			bases = append(bases, compact(child.Content(source)))
		}
	}
	return bases
}

// memberCollector turns declaration list children into members, attaching comments to their neighbours
type memberCollector struct {
	source       []byte
	namespace    string
	path         string
	keepComments bool
	pending      *sitter.Node
	last         *graph.Member
	lastEndRow   uint32
}

func newMemberCollector(source []byte, namespace, path string, keepComments bool) *memberCollector {
	return &memberCollector{source: source, namespace: namespace, path: path, keepComments: keepComments}
}

func (c *memberCollector) reset() {
	c.pending = nil
	c.last = nil
}

// add returns a member for a declaration node, or nil when the node is trivia
func (c *memberCollector) add(node *sitter.Node) *graph.Member {
	kind := node.Type()
	switch {
	case kind == "ERROR":
		c.reset()
		return nil
	case regionKinds[kind]:
		c.reset()
		return nil
	case kind == "comment" || directiveKinds[kind]:
		if !c.keepComments {
			return nil
		}
		if kind == "comment" && c.last != nil && c.pending == nil && node.StartPoint().Row == c.lastEndRow {
			c.extendLast(node)
			return nil
		}
		if c.pending == nil {
			c.pending = node
		}
		return nil
	}
	start := int(node.StartByte())
	if c.pending != nil {
		start = int(c.pending.StartByte())
	}
	member := &graph.Member{
		Kind:      kind,
		Name:      memberName(node, c.source),
		Text:      string(c.source[start:node.EndByte()]),
		Indent:    lineIndent(c.source, start),
		Namespace: c.namespace,
		Path:      c.path,
		Location:  &graph.Location{Start: start, End: int(node.EndByte()), Line: lineOf(c.source, start)},
		Literals:  literalSpans(node, start),
	}
	c.pending = nil
	c.last = member
	c.lastEndRow = node.EndPoint().Row
	return member
}

// extendLast appends a trailing same line comment to the previous member
func (c *memberCollector) extendLast(node *sitter.Node) {
	end := int(node.EndByte())
	c.last.Text = string(c.source[c.last.Location.Start:end])
	c.last.Location.End = end
}

// literalSpans returns string literals below node spanning more than one line, relative to base
func literalSpans(node *sitter.Node, base int) []graph.Span {
	if literalKinds[node.Type()] {
		if node.StartPoint().Row == node.EndPoint().Row {
			return nil
		}
		return []graph.Span{{Start: int(node.StartByte()) - base, End: int(node.EndByte()) - base}}
	}
	var result []graph.Span
	for j := 0; j < int(node.ChildCount()); j++ {
		result = append(result, literalSpans(node.Child(j), base)...)
	}
	return result
}

// memberName returns the declared name of a member node when it has one
func memberName(node *sitter.Node, source []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nameNode.Content(source)
	}
	for _, child := range namedChildren(node) {
		if child.Type() != "variable_declaration" {
			continue
		}
		for _, declarator := range namedChildren(child) {
			if declarator.Type() != "variable_declarator" {
				continue
			}
			if nameNode := declarator.ChildByFieldName("name"); nameNode != nil {
				return nameNode.Content(source)
			}
			if declarator.NamedChildCount() > 0 {
				return declarator.NamedChild(0).Content(source)
			}
		}
	}
	return ""
}

func namespaceName(node *sitter.Node, source []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return compact(nameNode.Content(source))
	}
	for _, child := range namedChildren(node) {
		if nameKinds[child.Type()] {
			return compact(child.Content(source))
		}
	}
	return ""
}

func bodyNode(node *sitter.Node) *sitter.Node {
	if body := node.ChildByFieldName("body"); body != nil {
		return body
	}
	for _, child := range namedChildren(node) {
		if child.Type() == "declaration_list" {
			return child
		}
	}
	return nil
}

func namedChildren(node *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for j := 0; j < int(node.NamedChildCount()); j++ {
		result = append(result, node.NamedChild(j))
	}
	return result
}

func location(node *sitter.Node) *graph.Location {
	return &graph.Location{
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
		Line:  int(node.StartPoint().Row) + 1,
	}
}

// lineIndent returns the whitespace between the start of the line and offset, empty if other text precedes offset
func lineIndent(source []byte, offset int) string {
	lineStart := offset
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	prefix := string(source[lineStart:offset])
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}

func lineOf(source []byte, offset int) int {
	return strings.Count(string(source[:offset]), "\n") + 1
}

// compact removes whitespace from a dotted name
func compact(name string) string {
	return strings.Join(strings.Fields(name), "")
}
