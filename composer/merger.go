package composer

import "github.com/viant/scomposer/inspector/graph"

// Unit is a flat compilation unit: member declarations only, with no using directives and no namespace wrapper
type Unit struct {
	Entry      string          // Qualified name of the entry type
	Namespaces []string        // Merged namespaces in discovery order
	Members    []*graph.Member // Entry members first, then namespace members
}

// Merge hoists the entry type's members to top level followed by all members of every closure namespace
func Merge(view View, entry *Entry, closure *NamespaceSet) *Unit {
	unit := &Unit{Entry: entry.Type.QualifiedName()}
	unit.Members = append(unit.Members, view.TypeMembers(entry.Type)...)
	for _, ns := range closure.Items() {
		unit.Namespaces = append(unit.Namespaces, ns.Name)
		for _, site := range view.Sites(ns) {
			unit.Members = append(unit.Members, view.SiteMembers(site)...)
		}
	}
	return unit
}
