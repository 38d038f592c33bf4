package composer

import (
	"errors"

	"github.com/viant/scomposer/inspector/repository"
)

var (
	// ErrProjectNotFound indicates no project file is resolvable from the input
	ErrProjectNotFound = repository.ErrProjectNotFound

	// ErrEntryNotFound indicates the requested namespace declares no entry type
	ErrEntryNotFound = errors.New("entry namespace not found")

	// ErrBaseTypeMismatch indicates the entry type does not derive from the host base type
	ErrBaseTypeMismatch = errors.New("entry type does not derive from the host base type")
)
