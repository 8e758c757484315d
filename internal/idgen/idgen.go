package idgen

import "github.com/google/uuid"

// NewFunc generates run identifiers. Override in tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }
