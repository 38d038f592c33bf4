package composer

import (
	"fmt"

	"github.com/viant/scomposer/inspector/graph"
)

// DefaultBaseType is the type a Space Engineers programmable block script must derive from
const DefaultBaseType = "MyGridProgram"

// implicitBase is reported for classes without a base list
const implicitBase = "Object"

// Entry represents the selected entry type and its enclosing namespace
type Entry struct {
	Namespace *graph.Namespace
	Type      *graph.Type
}

// Locate selects the first type declared in the namespace named name and validates its base type.
// An empty baseType disables validation.
func Locate(view View, name, baseType string) (*Entry, error) {
	for _, ns := range view.DeclaredNamespaces() {
		if ns.Name != name {
			continue
		}
		for _, site := range view.Sites(ns) {
			types := view.Types(site)
			if len(types) == 0 {
				continue
			}
			entry := &Entry{Namespace: ns, Type: types[0]}
			if err := validateBase(view, entry.Type, baseType); err != nil {
				return nil, err
			}
			return entry, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

func validateBase(view View, typ *graph.Type, baseType string) error {
	if baseType == "" {
		return nil
	}
	if typ.Kind != graph.KindClass {
		return fmt.Errorf("%w: %s is a %s, expected a class deriving from %s", ErrBaseTypeMismatch, typ.QualifiedName(), typ.Kind, baseType)
	}
	base := view.BaseType(typ)
	if base == "" {
		base = implicitBase
	}
	if base != baseType {
		return fmt.Errorf("%w: %s derives from %s, expected %s", ErrBaseTypeMismatch, typ.QualifiedName(), base, baseType)
	}
	return nil
}
