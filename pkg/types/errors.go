package types

import "errors"

// Document lookup errors.
var (
	ErrNotFound       = errors.New("object not found")
	ErrStaleReference = errors.New("stale object reference")
	ErrDuplicateID    = errors.New("object id already in use")
	ErrInvalidID      = errors.New("invalid object id")
)

// Property errors.
var (
	ErrPropertyUnsupported = errors.New("property not applicable")
	ErrTypeMismatch        = errors.New("property value type mismatch")
	ErrUnknownProperty     = errors.New("unknown property")
	ErrUnknownKind         = errors.New("unknown object kind")
)

// Reference parsing errors.
var (
	ErrInvalidRef = errors.New("invalid object reference")
)

// Block graph errors.
var (
	ErrComponentNotFound = errors.New("component not found")
	ErrGateNotFound      = errors.New("gate not found")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
