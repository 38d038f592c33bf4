package composer

import "github.com/viant/scomposer/inspector/graph"

// NamespaceSet is an insertion ordered set of namespaces keyed by qualified name
type NamespaceSet struct {
	items []*graph.Namespace
	index map[string]int
}

// NewNamespaceSet creates a set holding items in order, skipping duplicates
func NewNamespaceSet(items ...*graph.Namespace) *NamespaceSet {
	ret := &NamespaceSet{index: make(map[string]int)}
	for _, item := range items {
		ret.Add(item)
	}
	return ret
}

// Add appends ns unless present, returning true when it was added
func (s *NamespaceSet) Add(ns *graph.Namespace) bool {
	if ns == nil || s.Has(ns) {
		return false
	}
	s.index[ns.Name] = len(s.items)
	s.items = append(s.items, ns)
	return true
}

// Has returns true if a namespace with the same qualified name is present
func (s *NamespaceSet) Has(ns *graph.Namespace) bool {
	if ns == nil {
		return false
	}
	_, ok := s.index[ns.Name]
	return ok
}

// Items returns namespaces in insertion order
func (s *NamespaceSet) Items() []*graph.Namespace {
	return append([]*graph.Namespace{}, s.items...)
}

// Names returns qualified names in insertion order
func (s *NamespaceSet) Names() []string {
	var result = make([]string, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item.Name)
	}
	return result
}

// Len returns the number of namespaces
func (s *NamespaceSet) Len() int {
	return len(s.items)
}
