package core

import "github.com/google/uuid"

// Identifier tags a GPU-backed resource (texture, mesh, shader program) so
// diagnostics can reference it independently of the driver-assigned handle.
type Identifier string

func NewIdentifier() Identifier {
	return Identifier(uuid.New().String())
}

func (i Identifier) String() string {
	return string(i)
}
