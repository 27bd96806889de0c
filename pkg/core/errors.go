package core

import "errors"

// Common errors.
var (
	ErrUnknownScanner = errors.New("unknown scanner")
	ErrUnknownSlugger = errors.New("unknown slugger")
	ErrInvalidDepth   = errors.New("depth must not be negative")
)
